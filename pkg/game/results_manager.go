package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/crazyroad/pkg/simulation"
)

const (
	resultsObject   = "results"
	resultsProperty = "history"
)

// resultsFile 成绩存档的 YAML 结构
type resultsFile struct {
	Version int                    `yaml:"version"`
	Results []simulation.RunResult `yaml:"results"`
}

const resultsFileVersion = 1

// ResultsManager 历史成绩管理器
//
// 成绩按存活时间降序保存；时间相同的按结束时间先后排列。
// gdataManager 为 nil 时只保存在内存中。
type ResultsManager struct {
	gdataManager *gdata.Manager
	results      []simulation.RunResult
	maxResults   int // 0 表示不限制
	lastID       uuid.UUID
}

// NewResultsManager 创建成绩管理器并加载已有记录
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//   - maxResults: 最多保留的记录数，0 表示不限制
func NewResultsManager(gdataManager *gdata.Manager, maxResults int) (*ResultsManager, error) {
	if maxResults < 0 {
		return nil, fmt.Errorf("maxResults must be >= 0, got %d", maxResults)
	}

	rm := &ResultsManager{
		gdataManager: gdataManager,
		results:      make([]simulation.RunResult, 0),
		maxResults:   maxResults,
	}
	if err := rm.Load(); err != nil {
		log.Printf("[ResultsManager] Warning: Failed to load results: %v (starting empty)", err)
	}
	return rm, nil
}

// Load 从 gdata 加载成绩
func (rm *ResultsManager) Load() error {
	rm.results = rm.results[:0]
	if rm.gdataManager == nil {
		return nil
	}
	if !rm.gdataManager.ObjectPropExists(resultsObject, resultsProperty) {
		return nil
	}

	data, err := rm.gdataManager.LoadObjectProp(resultsObject, resultsProperty)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	var file resultsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal results: %w", err)
	}
	if file.Version != resultsFileVersion {
		return fmt.Errorf("unsupported results version %d", file.Version)
	}

	rm.results = append(rm.results, file.Results...)
	rm.sortAndTrim()
	log.Printf("[ResultsManager] Loaded %d results", len(rm.results))
	return nil
}

// Record 记录一局成绩并持久化
// 同一 ID 重复记录会被忽略
func (rm *ResultsManager) Record(result simulation.RunResult) error {
	for _, r := range rm.results {
		if r.ID == result.ID {
			return nil
		}
	}

	rm.results = append(rm.results, result)
	rm.lastID = result.ID
	rm.sortAndTrim()

	log.Printf("[ResultsManager] Recorded result %s: %.2fs (rank %d)", result.ID, result.ElapsedTime, rm.Rank(result.ID))
	return rm.save()
}

// Results 返回成绩列表的副本，按存活时间降序
func (rm *ResultsManager) Results() []simulation.RunResult {
	out := make([]simulation.RunResult, len(rm.results))
	copy(out, rm.results)
	return out
}

// Rank 返回成绩的名次（从 1 开始），不存在时返回 0
func (rm *ResultsManager) Rank(id uuid.UUID) int {
	for i, r := range rm.results {
		if r.ID == id {
			return i + 1
		}
	}
	return 0
}

// LastRecordedID 返回最近一次记录的成绩 ID（用于高亮）
func (rm *ResultsManager) LastRecordedID() uuid.UUID {
	return rm.lastID
}

// Clear 清空所有成绩
func (rm *ResultsManager) Clear() error {
	rm.results = rm.results[:0]
	rm.lastID = uuid.Nil

	if err := rm.save(); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}

	log.Printf("[ResultsManager] Results cleared")
	return nil
}

func (rm *ResultsManager) sortAndTrim() {
	sort.SliceStable(rm.results, func(i, j int) bool {
		a, b := rm.results[i], rm.results[j]
		if a.ElapsedTime != b.ElapsedTime {
			return a.ElapsedTime > b.ElapsedTime
		}
		return a.Timestamp.Before(b.Timestamp)
	})
	if rm.maxResults > 0 && len(rm.results) > rm.maxResults {
		rm.results = rm.results[:rm.maxResults]
	}
}

func (rm *ResultsManager) save() error {
	if rm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(resultsFile{Version: resultsFileVersion, Results: rm.results})
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := rm.gdataManager.SaveObjectProp(resultsObject, resultsProperty, data); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	return nil
}
