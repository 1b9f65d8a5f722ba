package main

import "sync"

const (
	EngineNegamax = "negamax"
	EngineMCTS    = "mcts"
)

type Config struct {
	AiEngine            string          `json:"ai_engine"`
	AiTimeBudgetMs      int             `json:"ai_time_budget_ms"`
	AiMaxDepth          int             `json:"ai_max_depth"`
	AiOrderByEval       bool            `json:"ai_order_by_eval"`
	AiTtMaxEntries      int             `json:"ai_tt_max_entries"`
	AiBookEnabled       bool            `json:"ai_book_enabled"`
	AiBookMaxMoves      int             `json:"ai_book_max_moves"`
	AiDoubleThreats     bool            `json:"ai_double_threats"`
	AiLogSearchStats    bool            `json:"ai_log_search_stats"`
	MctsExploration     float64         `json:"mcts_exploration"`
	MctsMaxPlayoutMoves int             `json:"mcts_max_playout_moves"`
	Heuristics          HeuristicConfig `json:"heuristics"`
}

type HeuristicConfig struct {
	LineOne          int `json:"line_one"`
	LineTwo          int `json:"line_two"`
	LineThree        int `json:"line_three"`
	UnreachableThree int `json:"unreachable_three"`
	CenterControl    int `json:"center_control"`
	HeightControl    int `json:"height_control"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		AiEngine:       EngineNegamax,
		AiTimeBudgetMs: 900,
		AiMaxDepth:     10,
		AiOrderByEval:  true,

		AiTtMaxEntries: 10000,

		AiBookEnabled:  true,
		AiBookMaxMoves: 3,

		AiDoubleThreats:  true,
		AiLogSearchStats: false,

		MctsExploration:     1.41421356,
		MctsMaxPlayoutMoves: BoardCells,

		Heuristics: HeuristicConfig{
			LineOne:          5,
			LineTwo:          50,
			LineThree:        500,
			UnreachableThree: 50,
			CenterControl:    3,
			HeightControl:    2,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	configStore.mu.RLock()
	defer configStore.mu.RUnlock()
	return configStore.config
}

func (s *ConfigStore) Update(config Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = sanitizeConfig(config)
}

func sanitizeConfig(config Config) Config {
	defaults := DefaultConfig()
	if config.AiEngine != EngineNegamax && config.AiEngine != EngineMCTS {
		config.AiEngine = defaults.AiEngine
	}
	if config.AiTimeBudgetMs <= 0 {
		config.AiTimeBudgetMs = defaults.AiTimeBudgetMs
	}
	if config.AiMaxDepth <= 0 {
		config.AiMaxDepth = defaults.AiMaxDepth
	}
	if config.AiTtMaxEntries <= 0 {
		config.AiTtMaxEntries = defaults.AiTtMaxEntries
	}
	if config.AiBookMaxMoves < 0 {
		config.AiBookMaxMoves = defaults.AiBookMaxMoves
	}
	if config.MctsExploration <= 0 {
		config.MctsExploration = defaults.MctsExploration
	}
	if config.MctsMaxPlayoutMoves <= 0 || config.MctsMaxPlayoutMoves > BoardCells {
		config.MctsMaxPlayoutMoves = defaults.MctsMaxPlayoutMoves
	}
	if config.Heuristics == (HeuristicConfig{}) {
		config.Heuristics = defaults.Heuristics
	}
	return config
}
