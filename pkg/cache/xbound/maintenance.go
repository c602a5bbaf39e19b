package xbound

import (
	"fmt"
	"log/slog"
)

// maxEmptyPolls 清扫终止保护：加权大小仍超标却取不到受害者时，
// 连续空轮询达到该次数即放弃并报告 [ErrInconsistentState]，避免无限自旋。
const maxEmptyPolls = 3

// RunPendingTasks 强制执行一次完整的维护遍历。
//
// 遍历内容：快照式清空请求队列并按 FIFO 逐条应用（发布容量 + 清扫），
// 最后对当前容量再收敛一次，处理两次遍历之间并发插入造成的超额。
// 这是测试和调用方可以依赖的唯一同步手段；机会式维护只是尽力而为。
// 内部故障记入日志，不向调用方返回。
// 如果缓存已关闭，静默忽略。
func (c *Cache[K, V]) RunPendingTasks() {
	if c.closed.Load() {
		return
	}
	c.maintMu.Lock()
	defer c.maintMu.Unlock()

	c.drainLocked()
	if err := c.evictToLocked(c.maxCapacity.Load()); err != nil {
		c.logger.Error("xbound: maintenance sweep failed",
			slog.String("cache", c.name), slog.Any("error", err))
	}
}

// tryMaintain 机会式维护：拿不到维护独占权就直接放弃，交给下一次遍历。
func (c *Cache[K, V]) tryMaintain() {
	if !c.maintMu.TryLock() {
		return
	}
	defer c.maintMu.Unlock()

	c.drainLocked()
	if err := c.evictToLocked(c.maxCapacity.Load()); err != nil {
		c.logger.Error("xbound: opportunistic maintenance failed",
			slog.String("cache", c.name), slog.Any("error", err))
	}
}

// drainLocked 快照式清空请求队列并按 FIFO 逐条应用。调用方必须持有 maintMu。
//
// 快照：只消费进入时已排队的请求数，遍历期间新入队的请求留给下一次遍历，
// 限定持续生产者场景下单次遍历的时长。
// 逐条应用而非合并：每条请求先发布自己的容量、再立即清扫到该值，
// 使每条请求引起的淘汰正确归属于它自己。
// 异步请求没有等待者，应用失败记入日志后继续处理下一条。
func (c *Cache[K, V]) drainLocked() {
	n := len(c.pending)
	for range n {
		select {
		case req := <-c.pending:
			if err := c.applyCapacityLocked(req.capacity); err != nil {
				c.logger.Error("xbound: async capacity change failed",
					slog.String("cache", c.name),
					slog.Uint64("capacity", req.capacity),
					slog.Any("error", err))
			}
		default:
			return
		}
	}
}

// applyCapacityLocked 发布新容量并同步清扫到该目标。调用方必须持有 maintMu。
func (c *Cache[K, V]) applyCapacityLocked(n uint64) error {
	c.maxCapacity.Store(n)
	return c.evictToLocked(n)
}

// evictToLocked 清扫到目标容量。调用方必须持有 maintMu。
//
// 循环弹出最可淘汰的条目直到加权大小不超过 target；target 为 0 时按条目数
// 清空到底（零权重条目不贡献加权大小，但容量 0 的语义是禁用缓存、必须排空）。
// 配置了监听器时每次移除同步通知一次，cause 为 [CauseSize]。
func (c *Cache[K, V]) evictToLocked(target uint64) error {
	if target == Unbounded {
		return nil
	}

	emptyPolls := 0
	for c.store.WeightedSize() > target || (target == 0 && c.store.Len() > 0) {
		e, ok := c.store.EvictNext()
		if !ok {
			emptyPolls++
			if emptyPolls >= maxEmptyPolls {
				return fmt.Errorf("%w: target=%d weighted_size=%d",
					ErrInconsistentState, target, c.store.WeightedSize())
			}
			continue
		}
		emptyPolls = 0
		if c.listener != nil {
			c.notifyEviction(e.Key, e.Value, CauseSize)
		}
	}
	return nil
}

// notifyEviction 调用淘汰监听器，逐条隔离 panic：
// 监听器内部的故障只影响该条通知，清扫继续处理下一个受害者。
func (c *Cache[K, V]) notifyEviction(key K, value V, cause RemovalCause) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("xbound: eviction listener panic recovered",
				slog.String("cache", c.name),
				slog.String("cause", cause.String()),
				slog.Any("panic", r))
		}
	}()
	c.listener(key, value, cause)
}
