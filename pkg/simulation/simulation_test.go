package simulation

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/decker502/crazyroad/pkg/components"
	"github.com/decker502/crazyroad/pkg/config"
	"github.com/decker502/crazyroad/pkg/ecs"
)

var (
	fixedID   = uuid.MustParse("6f1c1b3e-6a57-4a44-9d3c-6f3c52a1d001")
	fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func newTestSimulation(t *testing.T, cfg *config.RoadConfig, seed int64) *Simulation {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultRoadConfig()
	}
	s, err := NewSimulation(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}
	s.SetClock(func() time.Time { return fixedTime })
	s.SetIDGenerator(func() uuid.UUID { return fixedID })
	return s
}

// placeObstacle 放一辆车，使它在 arriveAt 时刻恰好到达 x
func placeObstacle(s *Simulation, x, y, arriveAt float64) ecs.EntityID {
	cfg := s.cfg
	em := s.entityManager
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.ObstacleComponent{
		Direction: components.DirectionRight,
		Speed:     cfg.ObstacleSpeed,
		StartX:    x - cfg.ObstacleSpeed*arriveAt,
		EndX:      cfg.PlayfieldWidth + cfg.ObstacleWidth/2,
		SpawnTime: 0,
		Duration:  cfg.ObstacleDuration() + arriveAt,
		Width:     cfg.ObstacleWidth,
		Height:    cfg.ObstacleHeight,
	})
	ecs.AddComponent(em, id, &components.PositionComponent{X: x - cfg.ObstacleSpeed*arriveAt, Y: y})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  cfg.ObstacleWidth * cfg.HitboxScale,
		Height: cfg.ObstacleHeight * cfg.HitboxScale,
	})
	return id
}

func TestNewSimulationRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultRoadConfig()
	cfg.LaneHeight = 0

	if _, err := NewSimulation(cfg, nil); err == nil {
		t.Fatal("expected error for zero lane height")
	}
}

func TestFirstAdvanceCalibrates(t *testing.T) {
	s := newTestSimulation(t, nil, 1)
	cameraY := s.CameraY()

	events := s.Advance(100)
	if !events.Calibrated || events.Ended || events.Elapsed != 0 {
		t.Fatalf("first Advance() = %+v, want calibration", events)
	}
	if s.CameraY() != cameraY {
		t.Error("calibration must not move the camera")
	}
}

func TestAdvanceTimeAnomalies(t *testing.T) {
	s := newTestSimulation(t, nil, 1)

	s.Advance(0)
	s.Advance(0.1)
	if math.Abs(s.Elapsed()-0.1) > 1e-9 {
		t.Fatalf("elapsed = %v, want 0.1", s.Elapsed())
	}

	// 时间倒退：只校准
	if events := s.Advance(0.05); !events.Calibrated {
		t.Errorf("backwards time should calibrate, got %+v", events)
	}
	// 超长间隔：只校准
	if events := s.Advance(30); !events.Calibrated {
		t.Errorf("long gap should calibrate, got %+v", events)
	}
	if math.Abs(s.Elapsed()-0.1) > 1e-9 {
		t.Fatalf("elapsed = %v after calibrations, want 0.1", s.Elapsed())
	}

	s.Advance(30.2)
	if math.Abs(s.Elapsed()-0.3) > 1e-9 {
		t.Errorf("elapsed = %v, want 0.3", s.Elapsed())
	}

	s.Recalibrate()
	if events := s.Advance(30.25); !events.Calibrated {
		t.Errorf("Recalibrate() should force a calibration tick, got %+v", events)
	}
}

func TestCameraScenario(t *testing.T) {
	cfg := config.DefaultRoadConfig()
	cfg.PlayfieldHeight = 240
	cfg.CameraStartY = floatPtr(0)
	cfg.InitialLanes = 1
	cfg.LookaheadMargin = 270
	s := newTestSimulation(t, cfg, 1)

	before := s.Lanes()
	s.Advance(0)
	for i := 1; i <= 12; i++ {
		s.Advance(float64(i) * 0.25)
	}

	if math.Abs(s.CameraY()-60) > 1e-9 {
		t.Errorf("camera y = %v, want 60", s.CameraY())
	}
	after := s.Lanes()
	if after[len(after)-1].Index < before[len(before)-1].Index+3 {
		t.Errorf("expected at least 3 new lanes, highest index %d → %d",
			before[len(before)-1].Index, after[len(after)-1].Index)
	}
	if s.Ended() {
		t.Error("run should still be going")
	}
}

func TestMoveDownAtFloorScenario(t *testing.T) {
	s := newTestSimulation(t, nil, 1)
	s.Advance(0)
	s.Advance(0.1)

	if s.RequestMove(MoveDown) {
		t.Fatal("MoveDown at the first lane should be rejected")
	}
	s.Advance(0.2)
	p := s.Player()
	if p.Y != 30 || p.TargetY != 30 || p.Row != 0 || p.Jumping {
		t.Errorf("player changed after rejected move: %+v", p)
	}
}

func TestCollisionScenario(t *testing.T) {
	s := newTestSimulation(t, nil, 1)
	s.Advance(0)
	s.Advance(0.1)

	// 下一 tick (t=0.2) 车辆开到玩家正中
	placeObstacle(s, s.cfg.PlayfieldWidth/2, s.cfg.PlayerStartY(), 0.2)

	events := s.Advance(0.2)
	if !events.Ended || events.Result == nil {
		t.Fatalf("Advance() = %+v, want ended with result", events)
	}
	want := RunResult{
		ID:          fixedID,
		ElapsedTime: s.Elapsed(),
		Timestamp:   fixedTime,
		Cause:       components.RunEndedCollision,
	}
	if diff := cmp.Diff(want, *events.Result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(events.Result.ElapsedTime-0.2) > 1e-9 {
		t.Errorf("elapsed = %v, want 0.2", events.Result.ElapsedTime)
	}

	elapsed := s.Elapsed()
	cameraY := s.CameraY()
	lanes := s.Lanes()
	obstacles := s.Obstacles()

	later := s.Advance(0.3)
	if !later.Ended || later.Result != nil {
		t.Errorf("Advance() after end = %+v, want ended without result", later)
	}
	if later.Elapsed != elapsed || s.CameraY() != cameraY {
		t.Error("world advanced after end")
	}
	if diff := cmp.Diff(lanes, s.Lanes()); diff != "" {
		t.Errorf("lanes changed after end (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(obstacles, s.Obstacles()); diff != "" {
		t.Errorf("obstacles changed after end (-before +after):\n%s", diff)
	}
	if s.RequestMove(MoveUp) {
		t.Error("RequestMove() after end should be rejected")
	}
	if s.Player().Alive {
		t.Error("player should be dead")
	}
	if r := s.Result(); r == nil || r.ID != fixedID {
		t.Errorf("Result() = %+v", r)
	}
}

func TestIdleRunFallsBehind(t *testing.T) {
	s := newTestSimulation(t, nil, 1)
	dt := 1.0 / 60.0

	var result *RunResult
	results := 0
	s.Advance(0)
	for i := 1; i <= 60*5; i++ {
		events := s.Advance(float64(i) * dt)
		if events.Result != nil {
			result = events.Result
			results++
		}
	}

	if results != 1 {
		t.Fatalf("got %d results, want exactly 1", results)
	}
	if result.Cause != components.RunEndedFellBehind {
		t.Errorf("cause = %s, want %s", result.Cause, components.RunEndedFellBehind)
	}
	// 镜头 422 起步，下边缘超过 35 时掉队：1.75 秒
	if result.ElapsedTime < 1.75 || result.ElapsedTime > 1.75+dt+1e-9 {
		t.Errorf("elapsed = %v, want just after 1.75", result.ElapsedTime)
	}
}

func TestMoveIntoObstacleDeliversResultOnNextAdvance(t *testing.T) {
	s := newTestSimulation(t, nil, 1)
	s.Advance(0)
	s.Advance(0.1)

	// 车辆已经停在玩家身上（本 tick 之后放入，尚未判定）
	em := s.entityManager
	id := placeObstacle(s, 0, s.cfg.PlayerStartY(), 0)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	pos.X = s.cfg.PlayfieldWidth / 2

	if !s.RequestMove(MoveUp) {
		t.Fatal("RequestMove() should be accepted")
	}
	if !s.Ended() {
		t.Fatal("run should end right after the move")
	}

	events := s.Advance(0.2)
	if !events.Ended || events.Result == nil {
		t.Fatalf("Advance() = %+v, want pending result", events)
	}
	if events.Result.Cause != components.RunEndedCollision {
		t.Errorf("cause = %s", events.Result.Cause)
	}
	if math.Abs(events.Result.ElapsedTime-0.1) > 1e-9 {
		t.Errorf("elapsed = %v, want 0.1", events.Result.ElapsedTime)
	}
	if again := s.Advance(0.3); again.Result != nil {
		t.Error("result delivered twice")
	}
}

func TestSeededRunsAreReproducible(t *testing.T) {
	play := func() ([]ObstacleView, PlayerView) {
		s := newTestSimulation(t, nil, 99)
		s.Advance(0)
		for i := 1; i <= 180; i++ {
			if i%40 == 0 {
				s.RequestMove(MoveUp)
			}
			s.Advance(float64(i) / 60)
		}
		return s.Obstacles(), s.Player()
	}

	obstaclesA, playerA := play()
	obstaclesB, playerB := play()
	if len(obstaclesA) == 0 {
		t.Fatal("expected some traffic after 3 seconds")
	}
	if diff := cmp.Diff(obstaclesA, obstaclesB); diff != "" {
		t.Errorf("obstacles differ (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(playerA, playerB); diff != "" {
		t.Errorf("player differs (-a +b):\n%s", diff)
	}
}

func TestLaneViewsAlternateKinds(t *testing.T) {
	s := newTestSimulation(t, nil, 1)

	for _, lane := range s.Lanes()[:4] {
		want := components.LaneSafe
		if lane.Index%2 == 1 {
			want = components.LaneTraffic
		}
		if lane.Kind != want || lane.Y != float64(lane.Index)*60 || lane.Height != 60 {
			t.Errorf("lane %+v, want kind %s at %v", lane, want, float64(lane.Index)*60)
		}
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
