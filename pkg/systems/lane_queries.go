package systems

import (
	"math"

	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/ecs"
)

// 跨组件查询
//
// 车辆不保存所属车道的实体ID，"某条车道上的车"一律按纵坐标就近匹配，
// 车道被回收后也不会出现悬空引用。

// obstaclesInLane 返回中心线与 laneCenterY 相距小于 tolerance 的车辆
func obstaclesInLane(em *ecs.EntityManager, laneCenterY, tolerance float64) []ecs.EntityID {
	result := make([]ecs.EntityID, 0)
	entities := ecs.GetEntitiesWith2[*components.ObstacleComponent, *components.PositionComponent](em)
	for _, id := range entities {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if math.Abs(pos.Y-laneCenterY) < tolerance {
			result = append(result, id)
		}
	}
	return result
}

// playerInLane 检查玩家当前位置或落脚点是否在车道范围内
func playerInLane(em *ecs.EntityManager, lane *components.LaneComponent) bool {
	players := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](em)
	for _, id := range players {
		player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if lane.Contains(pos.Y) || lane.Contains(player.TargetY) {
			return true
		}
	}
	return false
}
