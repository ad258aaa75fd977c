package automatic

// Computer vs computer games, played in parallel.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/stats"
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	GamesPlayed = expvar.NewInt("gamesPlayed")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Summary aggregates a batch of games.
type Summary struct {
	Games int
	WinsA int
	WinsB int
	Draws int
	// MoveTimes are the engine's think times in seconds, over all games.
	MoveTimes []float64
	Nodes     uint64
	// Score is MarkA's result per game: 1 for a win, 0.5 for a draw.
	Score stats.Running
}

func (s *Summary) add(rec *GameRecord) {
	s.Games++
	switch winnerMark(rec) {
	case move.MarkA:
		s.WinsA++
		s.Score.Push(1)
	case move.MarkB:
		s.WinsB++
		s.Score.Push(0)
	default:
		s.Draws++
		s.Score.Push(0.5)
	}
	s.MoveTimes = append(s.MoveTimes, rec.MoveTimes...)
	s.Nodes += rec.Nodes
}

// MoveTimeStats returns the mean and standard deviation of the move times.
func (s *Summary) MoveTimeStats() (float64, float64) {
	switch len(s.MoveTimes) {
	case 0:
		return 0, 0
	case 1:
		return s.MoveTimes[0], 0
	}
	return stat.MeanStdDev(s.MoveTimes, nil)
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d games: %v won %d, %v won %d, %d drawn\n",
		s.Games, move.MarkA, s.WinsA, move.MarkB, s.WinsB, s.Draws)
	fmt.Fprintf(&sb, "%v scores %.3f +/- %.3f (95%% confidence)\n",
		move.MarkA, s.Score.Mean(), s.Score.ConfidenceInterval(95))
	mean, sd := s.MoveTimeStats()
	fmt.Fprintf(&sb, "%d engine moves, %.4fs +/- %.4fs per move, %d nodes\n",
		len(s.MoveTimes), mean, sd, s.Nodes)
	if len(s.MoveTimes) > 1 {
		sb.WriteString("Move times (s):\n")
		hist := histogram.Hist(10, s.MoveTimes)
		if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
			log.Err(err).Msg("histogram-error")
		}
	}
	return sb.String()
}

// PlayGames plays numGames engine-vs-engine games on threads workers (one
// per cpu if threads < 1). If settings.Logfile is not empty, every game is
// appended to it as a YAML document.
func PlayGames(ctx context.Context, settings Settings, numGames, threads int) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	threads = max(1, min(threads, numGames))
	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-autoplay")

	var logfile *os.File
	if fn := settings.Logfile; fn != "" {
		var err error
		logfile, err = os.OpenFile(fn, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		defer logfile.Close()
	}

	GamesPlayed.Set(0)
	jobs := make(chan int, 100)
	records := make(chan *GameRecord, 100)
	ttFraction := settings.TTFraction / float64(threads)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 1; i <= numGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("got stop signal, exiting soon...")
				return nil
			}
		}
		return nil
	})

	var workers sync.WaitGroup
	workers.Add(threads)
	for t := 0; t < threads; t++ {
		t := t
		g.Go(func() error {
			defer workers.Done()
			r, err := NewGameRunner(settings, t, ttFraction)
			if err != nil {
				return err
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for n := range jobs {
				rec, err := r.PlayGame(gctx, n)
				if err != nil {
					return err
				}
				GamesPlayed.Add(1)
				records <- rec
			}
			return nil
		})
	}
	go func() {
		workers.Wait()
		close(records)
	}()

	summary := &Summary{}
	for rec := range records {
		summary.add(rec)
		if logfile == nil {
			continue
		}
		out, err := yaml.Marshal([]*GameRecord{rec})
		if err != nil {
			log.Err(err).Msg("marshal-game-record")
			continue
		}
		if _, err := logfile.Write(out); err != nil {
			log.Err(err).Msg("write-game-record")
		}
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Info().Int("games", summary.Games).Msg("autoplay-cancelled")
			return summary, nil
		}
		return summary, err
	}
	log.Info().Int("games", summary.Games).Int("wins-a", summary.WinsA).
		Int("wins-b", summary.WinsB).Int("draws", summary.Draws).Msg("autoplay-finished")
	return summary, nil
}
