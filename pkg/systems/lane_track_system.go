package systems

import (
	"log"
	"sort"

	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/ecs"
	"github.com/decker502/crazyroad/pkg/utils"
)

const evictionTimerName = "lane_eviction"

// LaneTrackSystem 无限车道生成与回收
//
// 车道编号从 0 开始严格递增、没有间隔，回收后的编号不会再生成。
// 生成检查每个 tick 都做；回收检查由计时器节流。
type LaneTrackSystem struct {
	entityManager *ecs.EntityManager
	camera        *CameraPursuitSystem
	timerEntity   ecs.EntityID

	laneHeight      float64
	batchSize       int
	lookaheadMargin float64
	evictionMargin  float64
	matchTolerance  float64

	nextIndex int // 下一条要生成的车道编号
}

// NewLaneTrackSystem 创建车道系统
func NewLaneTrackSystem(em *ecs.EntityManager, cfg *config.RoadConfig, camera *CameraPursuitSystem) *LaneTrackSystem {
	s := &LaneTrackSystem{
		entityManager:   em,
		camera:          camera,
		laneHeight:      cfg.LaneHeight,
		batchSize:       cfg.LaneBatchSize,
		lookaheadMargin: cfg.LookaheadMargin,
		evictionMargin:  cfg.EvictionMargin,
		matchTolerance:  cfg.LaneMatchTolerance,
	}

	s.timerEntity = em.CreateEntity()
	ecs.AddComponent(em, s.timerEntity, &components.TimerComponent{
		Name:       evictionTimerName,
		TargetTime: cfg.EvictionInterval,
	})

	return s
}

// Initialize 开局铺设初始车道，然后补足前瞻距离
func (s *LaneTrackSystem) Initialize(initialLanes int) {
	for i := 0; i < initialLanes; i++ {
		s.addLane()
	}
	s.EnsureLookahead(s.camera.Top())
	log.Printf("[LaneTrackSystem] Initialized %d lanes (highest top edge %.0f)", s.nextIndex, s.HighestTop())
}

// Update 每 tick 检查前瞻，计时器到点时执行回收
func (s *LaneTrackSystem) Update(deltaTime float64) {
	s.EnsureLookahead(s.camera.Top())

	timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, s.timerEntity)
	if !ok {
		return
	}
	timer.CurrentTime += deltaTime
	if timer.CurrentTime >= timer.TargetTime {
		timer.CurrentTime -= timer.TargetTime
		timer.IsReady = true
	}
	if timer.IsReady {
		timer.IsReady = false
		s.Evict(s.camera.Bottom())
	}
}

// EnsureLookahead 保证最高车道的上边缘超过 cameraTop + lookaheadMargin
//
// 每次不足时成批生成 batchSize 条车道。
// 返回本次生成的车道数。
func (s *LaneTrackSystem) EnsureLookahead(cameraTop float64) int {
	added := 0
	for s.HighestTop() <= cameraTop+s.lookaheadMargin {
		for i := 0; i < s.batchSize; i++ {
			s.addLane()
			added++
		}
	}
	return added
}

// Evict 回收上边缘低于 cameraBottom - evictionMargin 的车道
//
// 仍有车辆的车道推迟到之后的回收轮次。
// 玩家所在车道永远不会低于回收线（配置保证 evictionMargin >= fallTolerance），
// 否则说明掉队判定失效。
// 返回本次回收的车道数。
func (s *LaneTrackSystem) Evict(cameraBottom float64) int {
	threshold := cameraBottom - s.evictionMargin
	removed := 0
	deferred := 0

	for _, id := range ecs.GetEntitiesWith1[*components.LaneComponent](s.entityManager) {
		lane, _ := ecs.GetComponent[*components.LaneComponent](s.entityManager, id)
		if lane.Top() >= threshold {
			continue
		}

		if playerInLane(s.entityManager, lane) {
			utils.Assert(false, "lane %d below eviction line still holds the player", lane.Index)
			deferred++
			continue
		}
		if len(obstaclesInLane(s.entityManager, lane.CenterY(), s.matchTolerance)) > 0 {
			deferred++
			continue
		}

		s.entityManager.DestroyEntity(id)
		removed++
	}

	if removed > 0 || deferred > 0 {
		log.Printf("[LaneTrackSystem] Evicted %d lanes below %.0f (%d deferred, occupied)", removed, threshold, deferred)
	}
	return removed
}

// Lanes 返回当前存活的车道（按编号升序）
func (s *LaneTrackSystem) Lanes() []components.LaneComponent {
	ids := ecs.GetEntitiesWith1[*components.LaneComponent](s.entityManager)
	lanes := make([]components.LaneComponent, 0, len(ids))
	for _, id := range ids {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		lane, _ := ecs.GetComponent[*components.LaneComponent](s.entityManager, id)
		lanes = append(lanes, *lane)
	}
	sort.Slice(lanes, func(i, j int) bool { return lanes[i].Index < lanes[j].Index })
	return lanes
}

// NextIndex 返回下一条将要生成的车道编号（等于已生成的车道总数）
func (s *LaneTrackSystem) NextIndex() int {
	return s.nextIndex
}

// HighestTop 返回已生成的最高车道的上边缘
func (s *LaneTrackSystem) HighestTop() float64 {
	return float64(s.nextIndex) * s.laneHeight
}

// addLane 生成下一条车道
func (s *LaneTrackSystem) addLane() {
	index := s.nextIndex
	s.nextIndex++

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.LaneComponent{
		Index:  index,
		Kind:   components.LaneKindForIndex(index),
		Y:      float64(index) * s.laneHeight,
		Height: s.laneHeight,
	})
}
