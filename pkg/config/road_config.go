package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// RoadConfig 道路模拟参数
//
// 所有距离单位为像素，时间单位为秒。YAML 中缺省的字段保留 DefaultRoadConfig 的值。
type RoadConfig struct {
	// 场地
	PlayfieldWidth  float64 `yaml:"playfieldWidth"`  // 场地宽度
	PlayfieldHeight float64 `yaml:"playfieldHeight"` // 可见窗口高度
	LaneHeight      float64 `yaml:"laneHeight"`      // 车道高度

	// 镜头
	CameraSpeed  float64  `yaml:"cameraSpeed"`            // 镜头上升速度
	CameraStartY *float64 `yaml:"cameraStartY,omitempty"` // 镜头初始中心，缺省为 playfieldHeight/2

	// 车道生成与回收
	InitialLanes     int     `yaml:"initialLanes"`     // 开局车道数，0 表示按窗口高度推导
	LaneBatchSize    int     `yaml:"laneBatchSize"`    // 每次补充的车道数
	LookaheadMargin  float64 `yaml:"lookaheadMargin"`  // 镜头上边缘之上必须已生成的距离
	EvictionMargin   float64 `yaml:"evictionMargin"`   // 镜头下边缘之下超过该距离的车道被回收
	EvictionInterval float64 `yaml:"evictionInterval"` // 回收检查间隔

	// 车辆
	SpawnInterval      float64 `yaml:"spawnInterval"`      // 生成间隔
	ObstacleWidth      float64 `yaml:"obstacleWidth"`      // 车宽
	ObstacleHeight     float64 `yaml:"obstacleHeight"`     // 车高
	ObstacleSpeed      float64 `yaml:"obstacleSpeed"`      // 车速
	ObstacleVariants   int     `yaml:"obstacleVariants"`   // 外观数量
	SpawnSafetyMargin  float64 `yaml:"spawnSafetyMargin"`  // 出生点安全距离
	LaneMatchTolerance float64 `yaml:"laneMatchTolerance"` // 按位置匹配车道时的容差

	// 玩家
	PlayerWidth   float64 `yaml:"playerWidth"`   // 玩家宽度
	PlayerHeight  float64 `yaml:"playerHeight"`  // 玩家高度
	HitboxScale   float64 `yaml:"hitboxScale"`   // 碰撞盒缩放比例
	FallTolerance float64 `yaml:"fallTolerance"` // 掉出镜头下边缘的容差
	JumpPhase     float64 `yaml:"jumpPhase"`     // 跳跃每段时长
	JumpOvershoot float64 `yaml:"jumpOvershoot"` // 跳跃超出半个车道的高度

	// 时间源
	MaxFrameGap float64 `yaml:"maxFrameGap"` // 超过该间隔的 tick 视为重新校准

	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `yaml:"seed"`
}

// DefaultRoadConfig 返回默认参数（与原版手机竖屏布局一致）
func DefaultRoadConfig() *RoadConfig {
	return &RoadConfig{
		PlayfieldWidth:     390,
		PlayfieldHeight:    844,
		LaneHeight:         60,
		CameraSpeed:        20,
		InitialLanes:       0,
		LaneBatchSize:      3,
		LookaheadMargin:    180,
		EvictionMargin:     200,
		EvictionInterval:   1.0,
		SpawnInterval:      0.5,
		ObstacleWidth:      60,
		ObstacleHeight:     30,
		ObstacleSpeed:      100,
		ObstacleVariants:   3,
		SpawnSafetyMargin:  200,
		LaneMatchTolerance: 5,
		PlayerWidth:        80,
		PlayerHeight:       70,
		HitboxScale:        0.6,
		FallTolerance:      5,
		JumpPhase:          0.15,
		JumpOvershoot:      15,
		MaxFrameGap:        0.25,
	}
}

// LoadRoadConfig 从 YAML 文件加载道路参数
func LoadRoadConfig(filePath string) (*RoadConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read road config file: %w", err)
	}
	return ParseRoadConfig(data)
}

// ParseRoadConfig 解析 YAML 数据（用于嵌入的默认配置）
func ParseRoadConfig(data []byte) (*RoadConfig, error) {
	cfg := DefaultRoadConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse road config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid road config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置的有效性
func (c *RoadConfig) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"playfieldWidth", c.PlayfieldWidth},
		{"playfieldHeight", c.PlayfieldHeight},
		{"laneHeight", c.LaneHeight},
		{"cameraSpeed", c.CameraSpeed},
		{"evictionInterval", c.EvictionInterval},
		{"spawnInterval", c.SpawnInterval},
		{"obstacleWidth", c.ObstacleWidth},
		{"obstacleHeight", c.ObstacleHeight},
		{"obstacleSpeed", c.ObstacleSpeed},
		{"laneMatchTolerance", c.LaneMatchTolerance},
		{"playerWidth", c.PlayerWidth},
		{"playerHeight", c.PlayerHeight},
		{"hitboxScale", c.HitboxScale},
		{"jumpPhase", c.JumpPhase},
		{"maxFrameGap", c.MaxFrameGap},
	}
	for _, p := range positives {
		if !(p.value > 0) {
			return fmt.Errorf("%s must be > 0, got %v", p.name, p.value)
		}
	}

	nonNegatives := []struct {
		name  string
		value float64
	}{
		{"lookaheadMargin", c.LookaheadMargin},
		{"evictionMargin", c.EvictionMargin},
		{"fallTolerance", c.FallTolerance},
		{"jumpOvershoot", c.JumpOvershoot},
	}
	for _, p := range nonNegatives {
		if p.value < 0 {
			return fmt.Errorf("%s must be >= 0, got %v", p.name, p.value)
		}
	}

	if c.HitboxScale > 1 {
		return fmt.Errorf("hitboxScale must be <= 1, got %v", c.HitboxScale)
	}
	if c.InitialLanes < 0 {
		return fmt.Errorf("initialLanes must be >= 0, got %d", c.InitialLanes)
	}
	if c.LaneBatchSize < 1 {
		return fmt.Errorf("laneBatchSize must be >= 1, got %d", c.LaneBatchSize)
	}
	if c.ObstacleVariants < 1 {
		return fmt.Errorf("obstacleVariants must be >= 1, got %d", c.ObstacleVariants)
	}
	// 安全距离小于车宽时，新车可能直接生成在反向来车身上
	if c.SpawnSafetyMargin < c.ObstacleWidth {
		return fmt.Errorf("spawnSafetyMargin (%v) must be >= obstacleWidth (%v)", c.SpawnSafetyMargin, c.ObstacleWidth)
	}
	// 回收距离不小于掉队容差，保证玩家所在车道不会在本局结束前被回收
	if c.EvictionMargin < c.FallTolerance {
		return fmt.Errorf("evictionMargin (%v) must be >= fallTolerance (%v)", c.EvictionMargin, c.FallTolerance)
	}
	if c.LaneMatchTolerance >= c.LaneHeight/2 {
		return fmt.Errorf("laneMatchTolerance (%v) must be < laneHeight/2 (%v)", c.LaneMatchTolerance, c.LaneHeight/2)
	}

	return nil
}

// CameraStart 返回镜头初始中心
func (c *RoadConfig) CameraStart() float64 {
	if c.CameraStartY != nil {
		return *c.CameraStartY
	}
	return c.PlayfieldHeight / 2
}

// InitialLaneCount 返回开局车道数
// 缺省为 ceil(窗口高度 / 车道高度) + 5
func (c *RoadConfig) InitialLaneCount() int {
	if c.InitialLanes > 0 {
		return c.InitialLanes
	}
	return int(math.Ceil(c.PlayfieldHeight/c.LaneHeight)) + 5
}

// ObstacleDuration 返回车辆穿越场地的时长
func (c *RoadConfig) ObstacleDuration() float64 {
	return (c.PlayfieldWidth + c.ObstacleWidth) / c.ObstacleSpeed
}

// PlayerStartY 返回玩家初始位置（第 0 条车道中心）
func (c *RoadConfig) PlayerStartY() float64 {
	return c.LaneHeight / 2
}
