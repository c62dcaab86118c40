package simulation

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/ecs"
	"github.com/decker502/crazyroad/pkg/systems"
)

// Simulation 一局游戏的核心模拟
//
// 宿主每帧调用 Advance 传入单调时间（秒），通过 RequestMove 转发玩家输入，
// 再通过查询方法拉取渲染所需的快照。模拟不持有任何渲染或输入状态，单线程使用。
type Simulation struct {
	cfg           *config.RoadConfig
	entityManager *ecs.EntityManager

	clock       *systems.RunClockSystem
	camera      *systems.CameraPursuitSystem
	lanes       *systems.LaneTrackSystem
	motion      *systems.ObstacleMotionSystem
	spawner     *systems.TrafficSpawnSystem
	player      *systems.PlayerMotionSystem
	termination *systems.TerminationSystem

	// 时间校准
	hasLastTime bool
	lastTime    float64

	// 成绩交付
	result          *RunResult
	resultDelivered bool

	wallClock func() time.Time
	newID     func() uuid.UUID
}

// NewSimulation 创建一局新的模拟
//
// rng 为 nil 时按 cfg.Seed 创建随机源，Seed 为 0 时使用当前时间。
func NewSimulation(cfg *config.RoadConfig, rng *rand.Rand) (*Simulation, error) {
	if cfg == nil {
		cfg = config.DefaultRoadConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	em := ecs.NewEntityManager()
	clock := systems.NewRunClockSystem(em)
	camera := systems.NewCameraPursuitSystem(em, cfg)
	player := systems.NewPlayerMotionSystem(em, cfg)

	s := &Simulation{
		cfg:           cfg,
		entityManager: em,
		clock:         clock,
		camera:        camera,
		lanes:         systems.NewLaneTrackSystem(em, cfg, camera),
		motion:        systems.NewObstacleMotionSystem(em, clock),
		spawner:       systems.NewTrafficSpawnSystem(em, cfg, clock, rng),
		player:        player,
		termination:   systems.NewTerminationSystem(em, cfg, camera, player, clock),
		wallClock:     time.Now,
		newID:         uuid.New,
	}

	s.lanes.Initialize(cfg.InitialLaneCount())

	log.Printf("[Simulation] New run: lanes=%d, camera=%.1f", len(s.lanes.Lanes()), camera.Y())
	return s, nil
}

// SetClock 替换成绩时间戳的来源（测试用）
func (s *Simulation) SetClock(now func() time.Time) {
	s.wallClock = now
}

// SetIDGenerator 替换成绩 ID 的来源（测试用）
func (s *Simulation) SetIDGenerator(newID func() uuid.UUID) {
	s.newID = newID
}

// Advance 推进模拟到宿主时间 now
//
// 第一次调用、时间倒退、或与上次调用间隔超过 maxFrameGap 时只做校准，
// 不推进任何状态。本局结束后调用不改变任何状态；
// 尚未交付的成绩会在结束后的第一次调用中返回。
func (s *Simulation) Advance(now float64) TickEvents {
	if s.clock.IsEnded() {
		return s.endedEvents()
	}

	if !s.hasLastTime || now < s.lastTime || now-s.lastTime > s.cfg.MaxFrameGap {
		if s.hasLastTime {
			log.Printf("[Simulation] Calibration tick: last=%.3f, now=%.3f", s.lastTime, now)
		}
		s.hasLastTime = true
		s.lastTime = now
		return TickEvents{Elapsed: s.clock.Elapsed(), Calibrated: true}
	}

	dt := now - s.lastTime
	s.lastTime = now
	s.update(dt)

	if s.clock.IsEnded() {
		s.finish()
		return s.endedEvents()
	}
	return TickEvents{Elapsed: s.clock.Elapsed()}
}

// update 按固定顺序推进所有系统
func (s *Simulation) update(dt float64) {
	s.clock.Update(dt)
	s.camera.Update(dt)
	s.lanes.Update(dt)
	s.motion.Update(dt)
	s.entityManager.RemoveMarkedEntities()
	s.player.Update(dt)
	s.spawner.Update(dt)
	s.termination.Update(dt)
	s.entityManager.RemoveMarkedEntities()
}

// Recalibrate 让下一次 Advance 成为校准调用（宿主暂停恢复时使用）
func (s *Simulation) Recalibrate() {
	s.hasLastTime = false
}

// RequestMove 转发一次玩家移动
//
// 返回 false 表示移动被拒绝（已结束或已在最低车道）。
// 移动后立即判定一次结束条件，产生的成绩在下一次 Advance 中交付。
func (s *Simulation) RequestMove(dir MoveDirection) bool {
	if s.clock.IsEnded() {
		return false
	}

	var moved bool
	switch dir {
	case MoveUp:
		moved = s.player.MoveUp()
	case MoveDown:
		moved = s.player.MoveDown()
	}
	if !moved {
		return false
	}

	if s.termination.Evaluate() {
		s.finish()
	}
	return true
}

// finish 生成本局成绩（只执行一次）
func (s *Simulation) finish() {
	if s.result != nil {
		return
	}
	s.result = &RunResult{
		ID:          s.newID(),
		ElapsedTime: s.clock.Elapsed(),
		Timestamp:   s.wallClock(),
		Cause:       s.clock.Phase(),
	}
	log.Printf("[Simulation] Run result: id=%s, elapsed=%.2fs, cause=%s",
		s.result.ID, s.result.ElapsedTime, s.result.Cause)
}

func (s *Simulation) endedEvents() TickEvents {
	events := TickEvents{Elapsed: s.clock.Elapsed(), Ended: true}
	if s.result != nil && !s.resultDelivered {
		r := *s.result
		events.Result = &r
		s.resultDelivered = true
	}
	return events
}

// Lanes 返回所有存活车道，按编号升序
func (s *Simulation) Lanes() []LaneView {
	lanes := s.lanes.Lanes()
	views := make([]LaneView, 0, len(lanes))
	for _, lane := range lanes {
		views = append(views, LaneView{
			Index:  lane.Index,
			Kind:   lane.Kind,
			Y:      lane.Y,
			Height: lane.Height,
		})
	}
	return views
}

// Obstacles 返回所有存活车辆
func (s *Simulation) Obstacles() []ObstacleView {
	entities := ecs.GetEntitiesWith3[
		*components.ObstacleComponent,
		*components.PositionComponent,
		*components.CollisionComponent,
	](s.entityManager)

	views := make([]ObstacleView, 0, len(entities))
	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id)
		views = append(views, ObstacleView{
			X:            pos.X,
			Y:            pos.Y,
			Width:        obstacle.Width,
			Height:       obstacle.Height,
			HitboxWidth:  col.Width,
			HitboxHeight: col.Height,
			Direction:    obstacle.Direction,
			Variant:      obstacle.Variant,
		})
	}
	return views
}

// Player 返回玩家快照
func (s *Simulation) Player() PlayerView {
	id := s.player.Entity()
	view := PlayerView{
		TargetY: s.player.TargetY(),
		Row:     s.player.Row(),
		Alive:   s.player.Alive(),
		Jumping: s.player.IsJumping(),
	}
	view.X, view.Y = s.player.Position()
	if p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id); ok {
		view.Width, view.Height = p.Width, p.Height
	}
	if col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
		view.HitboxWidth, view.HitboxHeight = col.Width, col.Height
	}
	return view
}

// CameraY 返回镜头中心
func (s *Simulation) CameraY() float64 {
	return s.camera.Y()
}

// CameraBottom 返回可见窗口下边缘
func (s *Simulation) CameraBottom() float64 {
	return s.camera.Bottom()
}

// Elapsed 返回本局存活时间（秒）
func (s *Simulation) Elapsed() float64 {
	return s.clock.Elapsed()
}

// Ended 本局是否已结束
func (s *Simulation) Ended() bool {
	return s.clock.IsEnded()
}

// Phase 返回本局状态
func (s *Simulation) Phase() components.RunPhase {
	return s.clock.Phase()
}

// Result 返回本局成绩，未结束时为 nil
func (s *Simulation) Result() *RunResult {
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

// Config 返回本局使用的参数
func (s *Simulation) Config() *config.RoadConfig {
	return s.cfg
}
