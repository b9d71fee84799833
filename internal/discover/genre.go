package discover

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// seedTagWeight and inferredTagWeight implement the 3:1 preference for
// tags the seeds supplied directly over tags inferred from artist metadata.
const (
	seedTagWeight     = 3
	inferredTagWeight = 1

	tagsPerArtist = 5
)

// GenreStrategy expands weighted tags into their top artists, spreading a
// total candidate budget proportionally across tags.
type GenreStrategy struct {
	sim ports.SimilarityProvider
	log zerolog.Logger
}

var _ Strategy = (*GenreStrategy)(nil)

// NewGenre constructs the genre-mode strategy.
func NewGenre(sim ports.SimilarityProvider, log zerolog.Logger) *GenreStrategy {
	return &GenreStrategy{sim: sim, log: log.With().Str("strategy", "genre").Logger()}
}

type weightedTag struct {
	name   string
	weight int
}

// Discover collects tags from the seeds, ranks them by weight, then fills a
// proportionally divided artist budget per tag, exiting early once the
// total budget is spent.
func (s *GenreStrategy) Discover(ctx context.Context, seeds []domain.Seed, cfg Config) []domain.Candidate {
	seeds = domain.DedupeSeeds(seeds)
	if cfg.SeedLimit > 0 && len(seeds) > cfg.SeedLimit {
		seeds = seeds[:cfg.SeedLimit]
	}

	tags := s.collectTags(ctx, seeds)
	if len(tags) == 0 {
		s.log.Debug().Msg("no tags gathered from seeds")
		return nil
	}

	topN := cfg.TagCount
	if topN <= 0 {
		topN = 3
	}
	if len(tags) > topN {
		tags = tags[:topN]
	}

	return s.expandTags(ctx, tags, cfg)
}

// collectTags weights tags by frequency and source: genre seeds supply
// their tag directly, other seeds contribute inferred artist tags.
func (s *GenreStrategy) collectTags(ctx context.Context, seeds []domain.Seed) []weightedTag {
	weights := make(map[string]int)
	names := make(map[string]string)
	var order []string

	bump := func(tag string, weight int) {
		key := normalizeName(tag)
		if key == "" {
			return
		}
		if _, seen := weights[key]; !seen {
			order = append(order, key)
			names[key] = tag
		}
		weights[key] += weight
	}

	for _, seed := range seeds {
		if seed.Kind == domain.SeedGenre && seed.Genre != "" {
			bump(seed.Genre, seedTagWeight)
			continue
		}
		if seed.Genre != "" {
			bump(seed.Genre, seedTagWeight)
		}
		if seed.Artist == "" {
			continue
		}

		inferred, err := s.sim.ArtistTags(ctx, seed.Artist, tagsPerArtist)
		if err != nil {
			logFailure(s.log, seed.Artist, err)
			continue
		}
		for _, t := range inferred {
			bump(t.Name, inferredTagWeight)
		}
	}

	tags := make([]weightedTag, 0, len(order))
	for _, key := range order {
		tags = append(tags, weightedTag{name: names[key], weight: weights[key]})
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].weight > tags[j].weight
	})
	return tags
}

// expandTags queries top artists per tag with a per-tag share of the total
// budget proportional to tag weight.
func (s *GenreStrategy) expandTags(ctx context.Context, tags []weightedTag, cfg Config) []domain.Candidate {
	budget := cfg.TotalBudget
	if budget <= 0 {
		budget = 50
	}
	tracksPerArtist := cfg.TracksPerArtist
	if tracksPerArtist <= 0 {
		tracksPerArtist = 3
	}

	weightSum := 0
	for _, t := range tags {
		weightSum += t.weight
	}

	blocked := blacklistSet(cfg.Blacklist)
	seen := make(map[string]struct{})
	var out []domain.Candidate

	for _, tag := range tags {
		if domain.TrackCount(out) >= budget {
			break
		}

		share := int(math.Ceil(float64(budget) * float64(tag.weight) / float64(weightSum)))
		artistBudget := share / tracksPerArtist
		if artistBudget < 1 {
			artistBudget = 1
		}

		artists, err := s.sim.TagTopArtists(ctx, tag.name, artistBudget)
		if err != nil {
			logFailure(s.log, tag.name, err)
			continue
		}

		for _, a := range artists {
			if domain.TrackCount(out) >= budget {
				break
			}
			key := normalizeName(a.Name)
			if _, dup := seen[key]; dup {
				continue
			}
			if _, bad := blocked[key]; bad {
				continue
			}
			seen[key] = struct{}{}

			top, err := s.sim.TopTracks(ctx, a.Name, tracksPerArtist)
			if err != nil {
				logFailure(s.log, a.Name, err)
				continue
			}
			if len(top) == 0 {
				continue
			}

			tracks := make([]domain.CandidateTrack, 0, len(top))
			for _, t := range top {
				tracks = append(tracks, domain.CandidateTrack{
					Title:     t.Title,
					Playcount: t.Playcount,
					Rank:      t.Rank,
				})
			}
			out = append(out, domain.Candidate{Artist: a.Name, Tracks: tracks})
		}
	}

	return out
}
