package xbound

import (
	"fmt"
	"log/slog"
	"math"
)

// Unbounded 表示不设容量上限。
// 用作 Config.MaxCapacity 或传给容量变更操作时，清扫永不淘汰条目。
const Unbounded = math.MaxUint64

const (
	defaultTaskQueueSize = 128
	maxTaskQueueSize     = 1 << 16 // 65536
)

// Config 定义缓存的必需配置。
type Config struct {
	// MaxCapacity 初始最大加权容量。
	// 0 是合法值，表示禁用的缓存：维护遍历会把存储清空。
	// [Unbounded] 表示不设上限。
	// 注意零值 Config 得到的是容量为 0 的禁用缓存，调用方几乎总是应当显式赋值。
	MaxCapacity uint64
}

// Option 定义缓存可选配置函数类型。
type Option[K comparable, V any] func(*options[K, V])

type options[K comparable, V any] struct {
	weigher       func(key K, value V) uint32
	listener      EvictionListener[K, V]
	taskQueueSize int
	logger        *slog.Logger
	name          string
}

func defaultOptions[K comparable, V any]() options[K, V] {
	return options[K, V]{
		weigher:       func(K, V) uint32 { return 1 },
		taskQueueSize: defaultTaskQueueSize,
		logger:        slog.Default(),
	}
}

// WithWeigher 设置条目权重函数，在 Insert 时对每个条目求值一次。
// 默认每个条目权重为 1，此时加权大小退化为条目数。
// 允许返回 0（零权重条目不占容量）。传入 nil 将被忽略，保持默认值。
func WithWeigher[K comparable, V any](fn func(key K, value V) uint32) Option[K, V] {
	return func(o *options[K, V]) {
		if fn != nil {
			o.weigher = fn
		}
	}
}

// WithEvictionListener 设置淘汰监听器。
// 只能在构建时注册；调用约束见 [EvictionListener]。
func WithEvictionListener[K comparable, V any](fn EvictionListener[K, V]) Option[K, V] {
	return func(o *options[K, V]) {
		o.listener = fn
	}
}

// WithTaskQueueSize 设置异步容量请求队列的容量。
// 队列满时 SetMaxCapacityAsync 立即返回 [ErrChannelSend] 而非阻塞。
// n 必须为正且不超过 65536，否则 New 返回错误。默认 128。
func WithTaskQueueSize[K comparable, V any](n int) Option[K, V] {
	return func(o *options[K, V]) {
		o.taskQueueSize = n
	}
}

// WithLogger 设置自定义日志记录器，用于记录监听器 panic 和异步请求故障。
// 默认使用 slog.Default()。传入 nil 将被忽略，保持使用默认值。
func WithLogger[K comparable, V any](logger *slog.Logger) Option[K, V] {
	return func(o *options[K, V]) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置缓存名称，用于在多实例场景下区分日志来源。
// 默认为空字符串（日志中不包含名称）。
func WithName[K comparable, V any](name string) Option[K, V] {
	return func(o *options[K, V]) {
		o.name = name
	}
}

func (o *options[K, V]) validate() error {
	if o.taskQueueSize <= 0 || o.taskQueueSize > maxTaskQueueSize {
		return fmt.Errorf("%w: must be in [1, %d], got %d",
			ErrInvalidQueueSize, maxTaskQueueSize, o.taskQueueSize)
	}
	return nil
}
