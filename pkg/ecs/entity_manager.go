// Package ecs 提供塔视觉运行时使用的实体-组件存储
//
// 组件按具体类型（通常是指针类型）索引；系统通过 GetEntitiesWith 系列函数查询实体。
// 查询结果按实体 ID 升序返回，渲染和动画系统依赖这一顺序保证逐帧稳定。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID EntityID
	store  map[EntityID]map[reflect.Type]any
	// 合成等操作标记的待删除实体，在帧末统一清理
	pending []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID: 1,
		store:  make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.store[id] = make(map[reflect.Type]any)
	return id
}

// Exists 实体是否存在（已标记删除但未清理的实体仍视为存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.store[id]
	return ok
}

// EntityCount 当前实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.store)
}

// DestroyEntity 标记实体待删除，RemoveMarkedEntities 时才真正移除
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.pending = append(em.pending, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.pending {
		delete(em.store, id)
	}
	em.pending = em.pending[:0]
}

// AddComponent 为实体添加组件，同类型组件会被替换；实体不存在时忽略
func (em *EntityManager) AddComponent(id EntityID, component any) {
	em.put(id, reflect.TypeOf(component), component)
}

func (em *EntityManager) put(id EntityID, t reflect.Type, component any) {
	if comps, ok := em.store[id]; ok {
		comps[t] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if comps, ok := em.store[id]; ok {
		delete(comps, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comp, ok := em.store[id][componentType]
	return comp, ok
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.store[id][componentType]
	return ok
}

// GetEntitiesWith 查询拥有全部指定组件类型的实体，按 ID 升序返回
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, comps := range em.store {
		if hasAll(comps, componentTypes) {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func hasAll(comps map[reflect.Type]any, types []reflect.Type) bool {
	for _, t := range types {
		if _, ok := comps[t]; !ok {
			return false
		}
	}
	return true
}
