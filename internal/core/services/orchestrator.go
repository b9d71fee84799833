// Package services coordinates the discovery pipeline: seed collection,
// strategy selection, library matching, dedup/ranking and output.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/dedupe"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/discover"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/gateway"
)

// Orchestrator runs one discovery pipeline end to end. Every run gets its
// own gateway cache; only output faults surface to the caller.
type Orchestrator struct {
	gateway  *gateway.Gateway
	matcher  ports.Matcher
	source   ports.SeedSource
	playlist ports.PlaylistSink
	queue    ports.QueueSink
	notify   ports.Notifier
	settings ports.Settings
	log      zerolog.Logger
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(
	gw *gateway.Gateway,
	matcher ports.Matcher,
	source ports.SeedSource,
	playlist ports.PlaylistSink,
	queue ports.QueueSink,
	notify ports.Notifier,
	settings ports.Settings,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		gateway:  gw,
		matcher:  matcher,
		source:   source,
		playlist: playlist,
		queue:    queue,
		notify:   notify,
		settings: settings,
		log:      log.With().Str("component", "orchestrator").Logger(),
	}
}

// Run executes the full pipeline for one discovery mode. Auto runs apply
// conservative limits, force queue-append output and notify on success only.
func (o *Orchestrator) Run(ctx context.Context, mode domain.Mode, auto bool) domain.RunResult {
	if !domain.ValidMode(mode) {
		res := domain.RunResult{Error: fmt.Sprintf("unknown discovery mode %q", mode)}
		o.notifyResult(auto, res)
		return res
	}

	runID := uuid.NewString()
	log := o.log.With().Str("run_id", runID).Str("mode", string(mode)).Bool("auto", auto).Logger()
	log.Info().Msg("starting discovery run")

	sim, feat := o.gateway.ForRun()
	cfg := o.runConfig(auto)

	seeds := o.collectSeeds(ctx, log)
	if len(seeds) == 0 && mode != domain.ModeMood && mode != domain.ModeActivity {
		log.Info().Msg("no seeds available")
		res := domain.RunResult{Error: "no seeds available from the player selection or playback"}
		o.notifyResult(auto, res)
		return res
	}

	o.notify.Progress("Discovering candidates", 0.2)
	candidates := o.discover(ctx, log, mode, seeds, cfg, sim, feat)
	log.Info().Int("artists", len(candidates)).Int("tracks", domain.TrackCount(candidates)).Msg("discovery finished")

	o.notify.Progress("Matching against the library", 0.6)
	target := o.targetTotal(auto)
	tracks := o.matchAndRank(ctx, log, candidates, target)
	if len(tracks) == 0 {
		log.Info().Msg("no candidates matched the local library")
		res := domain.RunResult{Success: true}
		o.notifyResult(auto, res)
		return res
	}
	if len(tracks) > target {
		tracks = tracks[:target]
	}

	o.notify.Progress("Writing output", 0.9)
	added, err := o.output(ctx, log, tracks, auto)
	if err != nil {
		res := domain.RunResult{Tracks: tracks, Error: err.Error()}
		o.notifyResult(auto, res)
		return res
	}

	log.Info().Int("added", added).Msg("discovery run complete")
	res := domain.RunResult{Success: true, TracksAdded: added, Tracks: tracks}
	o.notifyResult(auto, res)
	return res
}

// discover selects and executes the strategy for mode. Mood and activity
// runs blend a seed-derived artist pool in when seeds exist; seeded runs
// with no resolvable seed fall back to artist expansion.
func (o *Orchestrator) discover(
	ctx context.Context,
	log zerolog.Logger,
	mode domain.Mode,
	seeds []domain.Seed,
	cfg discover.Config,
	sim ports.SimilarityProvider,
	feat ports.FeatureProvider,
) []domain.Candidate {
	switch mode {
	case domain.ModeArtist:
		return discover.NewArtist(sim, log).Discover(ctx, seeds, cfg)
	case domain.ModeTrack:
		return discover.NewTrack(sim, log).Discover(ctx, seeds, cfg)
	case domain.ModeGenre:
		return discover.NewGenre(sim, log).Discover(ctx, seeds, cfg)
	case domain.ModeSeeded:
		pool := discover.NewSeeded(feat, log).Discover(ctx, seeds, cfg)
		if len(pool) == 0 && len(seeds) > 0 {
			log.Info().Msg("no seed resolved against the feature service, falling back to artist expansion")
			pool = discover.NewArtist(sim, log).Discover(ctx, seeds, cfg)
		}
		return pool
	case domain.ModeMood, domain.ModeActivity:
		profile := discover.NewMood(feat, log).Discover(ctx, nil, cfg)
		if len(seeds) == 0 || cfg.BlendRatio <= 0 {
			return profile
		}
		seedPool := discover.NewArtist(sim, log).Discover(ctx, seeds, cfg)
		return discover.Blend(seedPool, profile, cfg.TotalBudget, cfg.BlendRatio)
	}
	return nil
}

// matchAndRank resolves candidate titles against the catalog and collapses
// duplicates across strategies into one ordered list.
func (o *Orchestrator) matchAndRank(ctx context.Context, log zerolog.Logger, candidates []domain.Candidate, target int) []domain.MatchedTrack {
	opts := ports.MatchOptions{
		MaxPerTitle:  o.settings.Int("match.max_per_title", 1),
		Best:         o.settings.Bool("match.best_only", true),
		MinRating:    o.settings.Int("match.min_rating", 0),
		AllowUnknown: o.settings.Bool("match.allow_unrated", true),
	}
	ranking := o.settings.Bool("rank.enabled", true)

	set := dedupe.NewSet(ranking)
	position := 0
	for _, cand := range candidates {
		if set.Len() >= target {
			break
		}

		titles := make([]string, 0, len(cand.Tracks))
		for _, t := range cand.Tracks {
			titles = append(titles, t.Title)
		}

		byTitle, err := o.matcher.Match(ctx, cand.Artist, titles, opts)
		if err != nil {
			log.Warn().Err(err).Str("artist", cand.Artist).Msg("catalog match failed, skipping artist")
			continue
		}

		for _, t := range cand.Tracks {
			for _, m := range byTitle[t.Title] {
				set.Add(m, t.Playcount, t.Rank, position)
				position++
			}
		}
	}

	if o.settings.Bool("rank.shuffle", false) {
		return set.Shuffle()
	}
	return set.Tracks()
}

// errPlaylistSkipped marks the skip policy hitting an existing playlist.
// It is not an output fault.
var errPlaylistSkipped = errors.New("playlist exists, skipped by policy")

// output commits the final list. Auto runs always append to the play queue.
func (o *Orchestrator) output(ctx context.Context, log zerolog.Logger, tracks []domain.MatchedTrack, auto bool) (int, error) {
	if auto || o.settings.String("output.target", "playlist") == "queue" {
		opts := ports.EnqueueOptions{
			Clear:       !auto && o.settings.Bool("queue.clear", false),
			SaveHistory: o.settings.Bool("queue.save_history", true),
		}
		if err := o.queue.Enqueue(ctx, tracks, opts); err != nil {
			return 0, fmt.Errorf("service: queue append failed: %w", err)
		}
		return len(tracks), nil
	}

	added, err := o.writePlaylist(ctx, tracks)
	if errors.Is(err, errPlaylistSkipped) {
		log.Info().Msg("playlist exists, skipping per policy")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("service: playlist output failed: %w", err)
	}
	return added, nil
}

func (o *Orchestrator) writePlaylist(ctx context.Context, tracks []domain.MatchedTrack) (int, error) {
	name := o.settings.String("playlist.name", "Discovered")
	parent := o.settings.String("playlist.parent", "")
	policy := o.settings.String("playlist.policy", "append")

	id, err := o.playlist.FindPlaylist(ctx, name)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		id, err = o.playlist.CreatePlaylist(ctx, name, parent)
		if err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	case policy == "skip":
		return 0, errPlaylistSkipped
	}

	opts := ports.AddOptions{
		ClearFirst:  policy == "overwrite",
		IgnoreDupes: o.settings.Bool("playlist.ignore_dupes", true),
	}
	if err := o.playlist.AddTracks(ctx, id, tracks, opts); err != nil {
		return 0, err
	}
	return len(tracks), nil
}

// notifyResult surfaces the run outcome. Manual runs always toast; auto
// runs toast only a success that added tracks.
func (o *Orchestrator) notifyResult(auto bool, res domain.RunResult) {
	switch {
	case auto:
		if res.Success && res.TracksAdded > 0 {
			o.notify.Toast(fmt.Sprintf("Added %d discovered tracks to the queue", res.TracksAdded), ports.NotifyInfo)
		}
	case res.Error != "":
		o.notify.Toast("Discovery failed: "+res.Error, ports.NotifyError)
	case res.TracksAdded == 0:
		o.notify.Toast("Discovery finished with no matching tracks in the library", ports.NotifyWarn)
	default:
		o.notify.Toast(fmt.Sprintf("Added %d discovered tracks", res.TracksAdded), ports.NotifyInfo)
	}
}

// runConfig reads strategy bounds from settings, tightening them for
// unattended runs.
func (o *Orchestrator) runConfig(auto bool) discover.Config {
	cfg := discover.Config{
		SeedLimit:         o.settings.Int("discover.seed_limit", 5),
		SimilarLimit:      o.settings.Int("discover.similar_limit", 10),
		TracksPerArtist:   o.settings.Int("discover.tracks_per_artist", 3),
		TotalBudget:       o.settings.Int("discover.total_budget", 60),
		TagCount:          o.settings.Int("discover.tag_count", 3),
		IncludeSeedArtist: o.settings.Bool("discover.include_seed_artist", false),
		IncludeSeedTrack:  o.settings.Bool("discover.include_seed_track", false),
		Blacklist:         o.settings.Strings("discover.blacklist", nil),
		Preset:            o.settings.String("discover.preset", ""),
		BlendRatio:        o.settings.Float("discover.blend_ratio", 0.5),
	}
	if auto {
		cfg.SeedLimit = capInt(cfg.SeedLimit, 2)
		cfg.SimilarLimit = capInt(cfg.SimilarLimit, 5)
		cfg.TracksPerArtist = capInt(cfg.TracksPerArtist, 2)
		cfg.TotalBudget = capInt(cfg.TotalBudget, 20)
	}
	return cfg
}

func (o *Orchestrator) targetTotal(auto bool) int {
	target := o.settings.Int("output.total", 25)
	if target < 1 {
		target = 1
	}
	if auto {
		target = capInt(target, 10)
	}
	return target
}

func capInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}
