package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/services"
	"github.com/desertthunder/gamelog/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers   = 4
	maxWorkers       = 10
	defaultRateLimit = 5.0
)

// PlaylistLengthOpts configures [Engine.PlaylistLengths].
type PlaylistLengthOpts struct {
	NumWorkers int     // Concurrent lookups (default: 4, max: 10)
	RateLimit  float64 // Requests per second (default: 5)
}

// PlaylistLengthResult is the lookup outcome for a single input.
type PlaylistLengthResult struct {
	Input      string
	PlaylistID string
	Info       *models.PlaylistInfo
	Err        error
}

// PlaylistLengthReport aggregates a batch of lookups. Results keep input order.
type PlaylistLengthReport struct {
	Results   []PlaylistLengthResult
	Succeeded int
	Failed    int
	Total     models.PlaylistInfo
}

type playlistJob struct {
	index int
	id    string
}

// PlaylistLengths looks up every input concurrently. Individual failures are
// recorded in the report; an error is returned only when nothing could run.
func (e *Engine) PlaylistLengths(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	inputs []string,
	opts PlaylistLengthOpts,
) (*PlaylistLengthReport, error) {
	if e.playlists == nil {
		return nil, fmt.Errorf("%w: playlist service not initialized", shared.ErrServiceUnavailable)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no playlists given", shared.ErrMissingArgument)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	report := &PlaylistLengthReport{Results: make([]PlaylistLengthResult, len(inputs))}
	jobs := make([]playlistJob, 0, len(inputs))
	step := 0
	for i, in := range inputs {
		report.Results[i].Input = in
		id, err := services.ParsePlaylistID(in)
		if err != nil {
			report.Results[i].Err = err
			step++
			e.sendProgress(progress, playlistDoneUpdate(step, len(inputs), report.Results[i]))
			continue
		}
		report.Results[i].PlaylistID = id
		jobs = append(jobs, playlistJob{index: i, id: id})
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	queue := make(chan playlistJob, len(jobs))
	done := make(chan int, len(jobs))

	var wg sync.WaitGroup
	for range min(opts.NumWorkers, max(len(jobs), 1)) {
		wg.Add(1)
		go e.playlistWorker(ctx, &wg, limiter, queue, done, report.Results)
	}

	for _, j := range jobs {
		queue <- j
	}
	close(queue)

	go func() {
		wg.Wait()
		close(done)
	}()

	for idx := range done {
		step++
		e.sendProgress(progress, playlistDoneUpdate(step, len(inputs), report.Results[idx]))
	}

	for _, res := range report.Results {
		if res.Err != nil {
			report.Failed++
			continue
		}
		report.Succeeded++
		report.Total.VideoCount += res.Info.VideoCount
		report.Total.TotalDurationSeconds += res.Info.TotalDurationSeconds
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// playlistWorker drains the queue. Each worker writes only to the result slot
// of the job it owns, so results need no lock.
func (e *Engine) playlistWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	queue <-chan playlistJob,
	done chan<- int,
	results []PlaylistLengthResult,
) {
	defer wg.Done()

	for j := range queue {
		if err := limiter.Wait(ctx); err != nil {
			results[j.index].Err = err
			done <- j.index
			continue
		}

		info, err := e.playlists.PlaylistInfo(ctx, j.id)
		if err == nil && info == nil {
			err = fmt.Errorf("%w: empty playlist info for %s", shared.ErrAPIRequest, j.id)
		}
		results[j.index].Info = info
		results[j.index].Err = err
		done <- j.index
	}
}
