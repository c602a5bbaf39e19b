package xbound

import "errors"

var (
	// ErrCacheDropped 表示缓存的维护机制已被拆除（Close 之后）。
	// 不可重试：调用方应停止使用该句柄。
	ErrCacheDropped = errors.New("xbound: cache dropped")

	// ErrChannelSend 表示容量变更请求无法送入内部队列（队列已满）。
	// 可重试，或改用阻塞式 SetMaxCapacityBlock 作为退路。
	ErrChannelSend = errors.New("xbound: failed to send capacity change to internal channel")

	// ErrInconsistentState 表示清扫时加权大小仍超出目标但取不到可淘汰条目。
	// 这是内部一致性故障：存储声称有权重却给不出条目。
	ErrInconsistentState = errors.New("xbound: no evictable entry while weighted size exceeds target")

	// ErrInvalidQueueSize 表示任务队列大小配置无效。
	ErrInvalidQueueSize = errors.New("xbound: invalid task queue size")
)
