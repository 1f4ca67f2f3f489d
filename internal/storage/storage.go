package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// EngineKind is the AI engine a preference record or a stats bucket refers
// to — Classical, Minimax, or MCTS.
type EngineKind int

const (
	EngineClassical EngineKind = iota
	EngineMinimax
	EngineMCTS
)

func (k EngineKind) String() string {
	switch k {
	case EngineMinimax:
		return "minimax"
	case EngineMCTS:
		return "mcts"
	default:
		return "classical"
	}
}

// AISide mirrors board.Side, kept as its own type so storage has no
// compile-time dependency on the board package's representation.
type AISide int

const (
	AISideWhite AISide = iota
	AISideBlack
)

// UserPreferences stores user settings: which engine to play against, which
// side the AI takes, and UI preferences. Never anything that would feed
// back into move selection — this is a preferences/scoreboard store, not
// persistent learning.
type UserPreferences struct {
	Username     string     `json:"username"`
	Engine       EngineKind `json:"engine"`
	MinimaxDepth int        `json:"minimax_depth"`
	AISide       AISide     `json:"ai_side"`
	SoundEnabled bool       `json:"sound_enabled"`
	LastPlayed   time.Time  `json:"last_played"`
}

// DefaultPreferences returns default user preferences.
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:     "Player",
		Engine:       EngineMinimax,
		MinimaxDepth: 3,
		AISide:       AISideWhite,
		SoundEnabled: true,
		LastPlayed:   time.Now(),
	}
}

// GameStats stores accumulated scoreboard statistics across sessions.
type GameStats struct {
	GamesPlayed      int            `json:"games_played"`
	Wins             int            `json:"wins"`
	Losses           int            `json:"losses"`
	Draws            int            `json:"draws"`
	WinsByEngine     map[string]int `json:"wins_by_engine"`
	TotalPlayTime    time.Duration  `json:"total_play_time"`
	LongestWinStreak int            `json:"longest_win_streak"`
	CurrentStreak    int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics.
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByEngine: make(map[string]int),
	}
}

// GameResult describes the outcome of one finished game, from the human
// player's point of view.
type GameResult struct {
	Won      bool
	Draw     bool
	Engine   EngineKind
	Duration time.Duration
}

// Storage wraps BadgerDB for local, non-networked persistence.
type Storage struct {
	db *badger.DB
}

// NewStorage opens (creating if necessary) the on-disk database.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if no prior session has run on this machine.
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})
	return firstLaunch, err
}

// MarkFirstLaunchComplete records that first-launch setup has run.
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences.
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returning defaults if none exist.
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})
	return prefs, err
}

// SaveStats saves game statistics.
func (s *Storage) SaveStats(stats *GameStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads game statistics, returning empty stats if none exist.
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	return stats, err
}

// RecordGameResult loads the current stats, applies result, and saves them.
func (s *Storage) RecordGameResult(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration

	if result.Draw {
		stats.Draws++
		stats.CurrentStreak = 0
	} else if result.Won {
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStreak {
			stats.LongestWinStreak = stats.CurrentStreak
		}
		stats.WinsByEngine[result.Engine.String()]++
	} else {
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}

// GetWinRate returns the win rate as a percentage (0-100).
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}
