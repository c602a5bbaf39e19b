package lrucore

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// Entry 表示存储中的一个常驻条目。
// Weight 在插入时确定，条目存续期间不变；替换视为删除旧条目加插入新条目。
type Entry[K comparable, V any] struct {
	Key    K
	Value  V
	Weight uint32
}

// Store 是并发安全的带权重记账的淘汰序存储。
// 必须通过 [NewStore] 创建，零值不可用。
//
// 淘汰序为 LRU：Get 会将条目移到最新端，EvictNext 从最旧端弹出。
// WeightedSize 在两次维护遍历之间是咨询值（并发写入下可能瞬时偏高），
// 维护遍历完成后是权威值。
type Store[K comparable, V any] struct {
	mu  sync.Mutex
	lru *simplelru.LRU[K, *Entry[K, V]]

	// weightedSize 常驻条目权重之和。
	// 在 mu 内写入，供任意 goroutine 无锁读取。
	weightedSize atomic.Uint64
}

// NewStore 创建一个空的 Store。
func NewStore[K comparable, V any]() *Store[K, V] {
	// 设计决策: simplelru 要求正的 size 且超出后自行淘汰。
	// 这里传 math.MaxInt 使其永不自行淘汰——容量收敛完全由上层维护例程
	// 通过 EvictNext 驱动，simplelru 只承担哈希索引和访问顺序链表。
	lru, err := simplelru.NewLRU[K, *Entry[K, V]](math.MaxInt, nil)
	if err != nil {
		// size 为正时 NewLRU 不会失败
		panic("lrucore: " + err.Error())
	}
	return &Store[K, V]{lru: lru}
}

// Insert 写入条目并更新权重记账。
// 如果 key 已存在，返回被替换的旧条目和 true。
func (s *Store[K, V]) Insert(key K, value V, weight uint32) (prev *Entry[K, V], replaced bool) {
	e := &Entry[K, V]{Key: key, Value: value, Weight: weight}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.lru.Peek(key); ok {
		prev, replaced = old, true
		s.weightedSize.Add(^uint64(old.Weight) + 1)
	}
	s.lru.Add(key, e)
	s.weightedSize.Add(uint64(weight))
	return prev, replaced
}

// Get 获取条目的值，并将其移到淘汰序的最新端。
// key 不存在时返回零值和 false。
func (s *Store[K, V]) Get(key K) (value V, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lru.Get(key)
	if !ok {
		return value, false
	}
	return e.Value, true
}

// Peek 获取条目的值但不影响淘汰序。
func (s *Store[K, V]) Peek(key K) (value V, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lru.Peek(key)
	if !ok {
		return value, false
	}
	return e.Value, true
}

// Contains 检查 key 是否存在（不影响淘汰序）。
func (s *Store[K, V]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Contains(key)
}

// Remove 删除条目并扣减权重记账。
// 返回被删除的条目；key 不存在时返回 nil 和 false。
func (s *Store[K, V]) Remove(key K) (*Entry[K, V], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lru.Peek(key)
	if !ok {
		return nil, false
	}
	s.lru.Remove(key)
	s.weightedSize.Add(^uint64(e.Weight) + 1)
	return e, true
}

// EvictNext 原子弹出当前最可淘汰的条目（最久未访问者）并扣减权重记账。
// 存储为空时返回 nil 和 false。
//
// 设计决策: 弹出与扣减在同一临界区内完成，而非"迭代取 key 再 Remove"两步，
// 避免两步之间并发 Get 刷新受害者的访问顺序后误删热条目。
func (s *Store[K, V]) EvictNext() (*Entry[K, V], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, e, ok := s.lru.RemoveOldest()
	if !ok {
		return nil, false
	}
	s.weightedSize.Add(^uint64(e.Weight) + 1)
	return e, true
}

// Len 返回当前条目数。
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// WeightedSize 无锁返回常驻条目权重之和。
// 并发修改期间为咨询值，维护遍历结束后为权威值。
func (s *Store[K, V]) WeightedSize() uint64 {
	return s.weightedSize.Load()
}

// Keys 返回所有 key 的快照，按从最旧到最新的淘汰序排列。仅用于测试和调试。
func (s *Store[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Keys()
}
