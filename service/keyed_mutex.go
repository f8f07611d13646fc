package service

import "sync"

// keyedMutex 提供按键粒度的互斥锁，用于串行化针对同一条评论的点赞切换。
// - 锁的数量固定为分片数，不随键空间增长，无需回收。
type keyedMutex struct {
	shards []sync.Mutex
}

// newKeyedMutex 创建一个带指定分片数的键级互斥锁。
func newKeyedMutex(shardCount int) *keyedMutex {
	if shardCount <= 0 {
		shardCount = 64
	}
	return &keyedMutex{
		shards: make([]sync.Mutex, shardCount),
	}
}

// Lock 锁定指定键所在的分片。
func (m *keyedMutex) Lock(key uint64) {
	m.shards[key%uint64(len(m.shards))].Lock()
}

// Unlock 解锁指定键所在的分片。
func (m *keyedMutex) Unlock(key uint64) {
	m.shards[key%uint64(len(m.shards))].Unlock()
}
