package lint

import (
	"sync"
	"time"

	"github.com/hitoshi/podfeed/internal/model"
)

// Store は検査対象をメモリ上で保持する。
// 状態はプロセスの終了とともに破棄される。
type Store struct {
	mu      sync.Mutex
	targets []*model.LintTarget
}

// NewStore は指定URLの検査対象を生成する。重複したURLは1件にまとめる。
func NewStore(feedURLs []string, now time.Time) *Store {
	s := &Store{}
	seen := make(map[string]bool, len(feedURLs))
	for _, u := range feedURLs {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		s.targets = append(s.targets, model.NewLintTarget(u, now))
	}
	return s
}

// ListDue は指定時刻の時点で検査すべき対象を返す。
func (s *Store) ListDue(now time.Time) []*model.LintTarget {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]*model.LintTarget, 0, len(s.targets))
	for _, t := range s.targets {
		if t.IsDue(now) {
			due = append(due, t)
		}
	}
	return due
}

// Targets は全検査対象のコピーを登録順に返す。
func (s *Store) Targets() []model.LintTarget {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.LintTarget, 0, len(s.targets))
	for _, t := range s.targets {
		out = append(out, *t)
	}
	return out
}

// Active は停止していない検査対象の件数を返す。
func (s *Store) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.targets {
		if t.FetchStatus == model.FetchStatusActive {
			n++
		}
	}
	return n
}
