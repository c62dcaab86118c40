package systems

import (
	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/ecs"
)

// CameraPursuitSystem 追击镜头
//
// 镜头按固定速度上升，与玩家操作无关，是唯一的难度来源：
// 玩家必须跟上，否则被镜头下边缘甩掉。本局结束后镜头永久停止。
type CameraPursuitSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID // 镜头实体ID
	halfHeight    float64      // 可见窗口半高
}

// NewCameraPursuitSystem 创建追击镜头系统。
func NewCameraPursuitSystem(em *ecs.EntityManager, cfg *config.RoadConfig) *CameraPursuitSystem {
	cs := &CameraPursuitSystem{
		entityManager: em,
		halfHeight:    cfg.PlayfieldHeight / 2,
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Y:      cfg.CameraStart(),
		Speed:  cfg.CameraSpeed,
		Halted: false,
	})

	return cs
}

// Update 推进镜头：y += speed * dt
func (cs *CameraPursuitSystem) Update(dt float64) {
	cameraComp, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok || cameraComp.Halted || dt <= 0 {
		return
	}
	cameraComp.Y += cameraComp.Speed * dt
}

// Halt 停止镜头（不可恢复）
func (cs *CameraPursuitSystem) Halt() {
	if cameraComp, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity); ok {
		cameraComp.Halted = true
	}
}

// Y 返回镜头中心
func (cs *CameraPursuitSystem) Y() float64 {
	cameraComp, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return 0
	}
	return cameraComp.Y
}

// Top 返回可见窗口上边缘
func (cs *CameraPursuitSystem) Top() float64 {
	return cs.Y() + cs.halfHeight
}

// Bottom 返回可见窗口下边缘
func (cs *CameraPursuitSystem) Bottom() float64 {
	return cs.Y() - cs.halfHeight
}
