// Package lrucore 提供带权重记账的淘汰序存储。
//
// 本包是 internal 包，仅供 pkg/cache/xbound 内部使用。
// 外部用户不应直接导入此包。
//
// 主要功能：
//   - Store：并发安全的键值存储，按 LRU 顺序（最久未访问优先）提供淘汰序
//   - 权重记账：维护常驻条目权重之和（WeightedSize），插入累加、替换差额调整、删除扣减
//   - EvictNext：原子弹出当前最可淘汰的条目，供维护例程执行容量收敛
//
// 依赖策略: 淘汰序由 hashicorp/golang-lru/v2/simplelru 的访问链表提供，
// 本包只在其上叠加权重记账与互斥保护，不自行实现链表。
// simplelru 非并发安全，且 Get 会更新访问顺序（写操作），
// 因此用 sync.Mutex 而非 RWMutex 保护（与 pkg/util/xlru 文档中记录的取舍一致）。
package lrucore
