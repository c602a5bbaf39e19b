// Package xbound 提供带动态容量控制的有界加权缓存。
//
// xbound 的核心是容量控制与淘汰维护子系统：运行中的缓存可以在并发读写
// 负载下随时变更最大加权容量，变更通过同步（阻塞）或异步（延迟）两条
// 路径提交，由维护遍历按提交顺序应用并执行淘汰清扫，每移除一个条目
// 同步通知一次调用方提供的淘汰监听器。
//
// # 核心特性
//
//   - 泛型支持：任意 comparable 键类型和任意值类型
//   - 加权容量：权重由构建时的 weigher 决定，默认每条目权重 1
//   - 动态容量：SetMaxCapacityBlock 同步收敛，SetMaxCapacityAsync 入队延迟应用
//   - 淘汰监听：每次容量驱动的移除同步通知，监听器 panic 逐条隔离
//   - 并发安全：所有操作都是线程安全的
//
// # 容量控制模型
//
// 已发布的当前容量只由持有维护独占权的路径写入，任何 goroutine 可通过
// Policy().MaxCapacity() 无锁读取。同一时刻最多一个维护遍历在跑；
// 阻塞式变更等待在途遍历结束后独占执行，异步变更只做一次有界的入队尝试。
// 排队的多条请求严格按 FIFO 逐条应用，每条先发布容量再清扫，不合并：
// 较小的中间容量会产生可被监听器观察到的淘汰，即使后续请求又调大容量。
//
// 维护遍历由 RunPendingTasks 显式触发，或在 Insert 造成超额时机会式触发。
// 机会式维护是尽力而为的优化，不构成正确性保证；
// 需要同步语义时唯一可依赖的手段是显式调用 RunPendingTasks
// 或等待 SetMaxCapacityBlock 成功返回（后者是同步点：它引起的所有淘汰
// 在返回前都已完成并可见）。
//
// # 配置选项
//
// Config 结构体提供必需的配置：
//   - MaxCapacity：初始最大加权容量，0 表示禁用，Unbounded 表示无上限
//
// 可选配置通过 Option 函数提供：
//   - WithWeigher：条目权重函数
//   - WithEvictionListener：淘汰监听器
//   - WithTaskQueueSize：异步请求队列容量（默认 128）
//   - WithLogger / WithName：日志注入与来源标识
//
// # 错误语义
//
//   - ErrCacheDropped：维护机制已拆除（Close 后），不可重试
//   - ErrChannelSend：异步请求入队失败（队列满），可重试或退回阻塞路径
//   - ErrInconsistentState：清扫终止保护触发（占用超标却无受害者可取）
//
// 错误都以显式返回值传播，不静默失败。忽略返回的错误只是让该次容量
// 请求不被兑现，没有隐式重试。监听器内部的故障被逐条隔离，
// 永远不会作为错误出现在容量变更调用方那里。
//
// # 设计决策
//
// 异步请求不依赖常驻后台线程：显式任务队列由维护例程按需（或机会式）
// 排空，缓存不启动任何 goroutine，Close 后没有需要等待的清理。
// 淘汰序由 internal/lrucore 基于 hashicorp/golang-lru 的访问链表提供，
// 本包只负责容量发布、请求排队、清扫收敛与监听器集成。
//
// # 已知限制
//
//   - 容量为 0 时新插入的条目在下一次维护遍历前可能被短暂查询到，
//     但保证被下一次遍历清除
//   - 显式 Invalidate 不触发监听器；监听器只观察维护例程执行的移除
//     （容量清扫的 CauseSize 与 InvalidateAll 的 CauseExplicit）
//   - 替换已有 key 不触发监听器通知
//   - WeightedSize/EntryCount 在两次遍历之间是咨询值
//   - 请求一旦入队即不可撤回，没有取消或超时机制
//
// # 注意事项
//
//   - 同一生产者先异步后阻塞提交时顺序保持：阻塞路径先按 FIFO 应用
//     队列中已有的请求，再应用自己的
//   - 不同生产者之间的提交顺序只有队列 FIFO 语义，没有额外保证
//   - 监听器中严禁调用本 Cache 的维护类方法，否则会死锁
//   - 零值 Config 得到容量为 0 的禁用缓存，调用方应显式赋值 MaxCapacity
package xbound
