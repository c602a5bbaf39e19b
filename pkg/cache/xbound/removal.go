package xbound

// RemovalCause 是淘汰通知上的分类标记，说明条目因何被移除。
type RemovalCause uint8

const (
	// CauseSize 表示容量约束驱动的淘汰：清扫将占用收敛到目标容量时移除。
	CauseSize RemovalCause = iota + 1

	// CauseExplicit 表示显式清空（InvalidateAll）导致的移除。
	CauseExplicit
)

// String 返回原因的可读名称，用于日志。
func (c RemovalCause) String() string {
	switch c {
	case CauseSize:
		return "size"
	case CauseExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// EvictionListener 是调用方提供的淘汰观察者，每移除一个条目被同步调用一次。
//
// 监听器只在维护例程内、持有维护独占权时被调用：同一时刻最多一个遍历在跑，
// 因此监听器永远不会被并发调用。监听器内部的 panic 会被逐条恢复并记录日志，
// 不会中止清扫，也不会传播给容量变更的调用方。
//
// 调用方必须遵守以下约束：
//   - 严禁在监听器中调用本 Cache 的维护类方法
//     （SetMaxCapacity/SetMaxCapacityBlock/RunPendingTasks/InvalidateAll），否则会死锁
//   - 慢监听器只拖慢触发它的那次维护遍历（及等待该遍历的阻塞调用方），
//     不会阻塞独占权之外的 Get/Insert 流量；仍应避免耗时操作
type EvictionListener[K comparable, V any] func(key K, value V, cause RemovalCause)
