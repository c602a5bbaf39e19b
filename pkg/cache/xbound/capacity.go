package xbound

// capacityRequest 是一条异步容量变更请求。
// 每次调用创建一条，被恰好一次维护遍历消费后丢弃。
type capacityRequest struct {
	capacity uint64
}

// SetMaxCapacity 将最大容量同步变更为 n。
// 兼容别名，语义与 [Cache.SetMaxCapacityBlock] 完全一致。
func (c *Cache[K, V]) SetMaxCapacity(n uint64) error {
	return c.SetMaxCapacityBlock(n)
}

// SetMaxCapacityBlock 将最大容量同步变更为 n，返回前完成清扫。
//
// 调用方会阻塞等待任何在途的维护遍历结束，随后独占维护权：
// 先按 FIFO 应用队列中已有的异步请求（保持同一生产者的提交顺序），
// 再发布 n 并同步清扫到 n。成功返回即为同步点：本次变更引起的所有淘汰
// 都已完成且对调用方可见（并发插入可能随后再次推高占用，留待下一次遍历）。
//
// 缓存已关闭时返回 [ErrCacheDropped]；
// 清扫触发终止保护时返回 [ErrInconsistentState]。
func (c *Cache[K, V]) SetMaxCapacityBlock(n uint64) error {
	if c.closed.Load() {
		return ErrCacheDropped
	}
	c.maintMu.Lock()
	defer c.maintMu.Unlock()

	// 等锁期间可能已 Close
	if c.closed.Load() {
		return ErrCacheDropped
	}

	c.drainLocked()
	return c.applyCapacityLocked(n)
}

// SetMaxCapacityAsync 提交容量变更请求后立即返回，不等待应用。
// 请求由之后的显式（RunPendingTasks）或机会式维护遍历按提交顺序应用。
//
// 多条排队请求不会被合并成只保留最终值：较小的中间容量会产生
// 可被监听器观察到的淘汰，即使后续请求又调大了容量。
//
// 队列已满时返回 [ErrChannelSend]（可重试或退回阻塞路径）；
// 缓存已关闭时返回 [ErrCacheDropped]。
func (c *Cache[K, V]) SetMaxCapacityAsync(n uint64) error {
	if c.closed.Load() {
		return ErrCacheDropped
	}
	select {
	case c.pending <- capacityRequest{capacity: n}:
		return nil
	default:
		return ErrChannelSend
	}
}

// Policy 返回缓存策略的只读快照。
func (c *Cache[K, V]) Policy() Policy {
	return Policy{maxCapacity: c.maxCapacity.Load()}
}

// Policy 是缓存策略的值快照，创建后不随缓存变化。
type Policy struct {
	maxCapacity uint64
}

// MaxCapacity 返回快照时刻已发布的最大容量。
// ok 为 false 表示无上限（[Unbounded]）。
// 读取是无锁的：返回值可能即将被在途的容量变更取代，但绝不会是半写的值。
func (p Policy) MaxCapacity() (capacity uint64, ok bool) {
	if p.maxCapacity == Unbounded {
		return 0, false
	}
	return p.maxCapacity, true
}
