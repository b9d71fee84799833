package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/domain"
)

// collectSeeds derives seeds from the host player's selection, falling back
// to the playing track when nothing is selected. Joined artist fields are
// split into one seed per artist.
func (o *Orchestrator) collectSeeds(ctx context.Context, log zerolog.Logger) []domain.Seed {
	tracks, err := o.source.Selection(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("reading player selection failed")
	}

	if len(tracks) == 0 {
		playing, err := o.source.NowPlaying(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("reading playing track failed")
		}
		if playing != nil {
			tracks = []domain.Track{*playing}
		}
	}

	var seeds []domain.Seed
	for _, t := range tracks {
		for _, artist := range domain.SplitArtists(t.Artist) {
			seed := domain.Seed{
				Kind:   domain.SeedArtist,
				Artist: artist,
				Genre:  t.Genre,
			}
			if t.Title != "" {
				seed.Kind = domain.SeedTrack
				seed.Title = t.Title
			}
			seeds = append(seeds, seed)
		}
	}

	return domain.DedupeSeeds(seeds)
}
