package xbound

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xbound/internal/lrucore"
)

// Cache 是带动态容量控制的有界加权缓存。
// 必须通过 [New] 创建，零值不可用（方法调用会 panic）。
// 所有方法都是并发安全的。
// 调用 Close 后，读操作返回零值/false，写操作静默忽略，
// 容量变更操作返回 [ErrCacheDropped]。
type Cache[K comparable, V any] struct {
	store *lrucore.Store[K, V]

	// maxCapacity 已发布的当前容量。
	// 只在持有 maintMu 的维护路径内写入，供任意 goroutine 无锁读取。
	maxCapacity atomic.Uint64

	// pending 异步容量请求队列：多生产者，单活跃消费者（当前持有 maintMu 者）。
	pending chan capacityRequest

	// maintMu 维护独占保护：同一时刻最多一个维护遍历在跑。
	// 想要运行或等待容量变更的第二个调用方等待在此，而非并发地再跑一个遍历，
	// 保证清扫对占用的视图一致。
	maintMu sync.Mutex

	weigher  func(key K, value V) uint32
	listener EvictionListener[K, V]
	logger   *slog.Logger
	name     string

	closed    atomic.Bool
	closeOnce sync.Once
}

// New 创建缓存。
// cfg.MaxCapacity 为初始容量（0 表示禁用，[Unbounded] 表示无上限）。
// 配置无效时返回错误（如任务队列大小越界）。
func New[K comparable, V any](cfg Config, opts ...Option[K, V]) (*Cache[K, V], error) {
	o := defaultOptions[K, V]()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	c := &Cache[K, V]{
		store:    lrucore.NewStore[K, V](),
		pending:  make(chan capacityRequest, o.taskQueueSize),
		weigher:  o.weigher,
		listener: o.listener,
		logger:   o.logger,
		name:     o.name,
	}
	c.maxCapacity.Store(cfg.MaxCapacity)
	return c, nil
}

// Get 获取缓存值，并刷新条目在淘汰序中的位置。
// 如果键不存在或缓存已关闭，返回零值和 false。
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	if c.closed.Load() {
		return value, false
	}
	return c.store.Get(key)
}

// Insert 写入缓存条目，权重由构建时的 weigher 决定。
// 如果缓存已关闭，静默忽略。
//
// 容量已为 0（或写入导致超额）时条目仍会先落入存储，在下一次维护遍历前
// 可能被短暂查询到，但保证被下一次遍历清除。写入后若占用超出当前容量，
// 会尽力触发一次机会式维护（拿不到维护独占权则留给下一次遍历）；
// 该行为是尽力而为的优化，需要同步语义时请显式调用 [Cache.RunPendingTasks]。
func (c *Cache[K, V]) Insert(key K, value V) {
	if c.closed.Load() {
		return
	}
	c.store.Insert(key, value, c.weigher(key, value))

	if c.store.WeightedSize() > c.maxCapacity.Load() {
		c.tryMaintain()
	}
}

// Contains 检查键是否存在（不影响淘汰序）。
// 如果缓存已关闭，返回 false。
func (c *Cache[K, V]) Contains(key K) bool {
	if c.closed.Load() {
		return false
	}
	return c.store.Contains(key)
}

// Invalidate 显式删除条目。返回 true 表示键存在并被删除。
// 不触发淘汰监听器（监听器只观察维护例程执行的移除）。
// 如果缓存已关闭，返回 false。
func (c *Cache[K, V]) Invalidate(key K) bool {
	if c.closed.Load() {
		return false
	}
	_, ok := c.store.Remove(key)
	return ok
}

// InvalidateAll 清空全部条目。
// 在维护独占权内同步执行；配置了监听器时，每个被移除的条目
// 都会收到 cause 为 [CauseExplicit] 的通知。
// 如果缓存已关闭，静默忽略。
func (c *Cache[K, V]) InvalidateAll() {
	if c.closed.Load() {
		return
	}
	c.maintMu.Lock()
	defer c.maintMu.Unlock()

	for {
		e, ok := c.store.EvictNext()
		if !ok {
			return
		}
		if c.listener != nil {
			c.notifyEviction(e.Key, e.Value, CauseExplicit)
		}
	}
}

// EntryCount 返回当前条目数。
// 两次维护遍历之间可能包含尚未被清扫的超额条目。
// 如果缓存已关闭，返回 0。
func (c *Cache[K, V]) EntryCount() uint64 {
	if c.closed.Load() {
		return 0
	}
	return uint64(c.store.Len())
}

// WeightedSize 无锁返回常驻条目权重之和。
// 维护遍历完成后是权威值，并发修改期间是咨询值。
// 如果缓存已关闭，返回 0。
func (c *Cache[K, V]) WeightedSize() uint64 {
	if c.closed.Load() {
		return 0
	}
	return c.store.WeightedSize()
}

// Close 关闭缓存，拆除维护机制。
// 该方法是幂等的：多次调用只会执行一次清理。
//
// Close 后容量变更操作返回 [ErrCacheDropped]；已入队但尚未应用的异步请求
// 被丢弃，不再兑现。存储内容交给 GC 回收，不触发淘汰监听器。
func (c *Cache[K, V]) Close() {
	c.closed.Store(true)
	c.closeOnce.Do(func() {
		for {
			select {
			case <-c.pending:
			default:
				return
			}
		}
	})
}
