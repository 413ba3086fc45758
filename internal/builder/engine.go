package builder

import (
	"github.com/futig/realtor-bot/internal/config"
	"github.com/futig/realtor-bot/internal/dialogue"
	"github.com/futig/realtor-bot/internal/extract"
	"github.com/futig/realtor-bot/internal/lexicon"
	"github.com/futig/realtor-bot/internal/location"
	"go.uber.org/zap"
)

// engine is the extraction and merge stack shared by both binaries
type engine struct {
	lexicon   *lexicon.Lexicon
	matcher   *location.Matcher
	extractor *extract.Extractor
	merger    *dialogue.Merger
	resolver  *location.Resolver
	checker   *dialogue.Checker
}

// setupEngine builds the lexicons once; nothing mutates them afterwards.
// Side files are optional: a missing or broken one leaves its table empty.
func setupEngine(cfg *config.Config, logger *zap.Logger) *engine {
	lex := lexicon.Default()

	keywords := lexicon.Keywords{}
	if path := cfg.LexiconCfg.KeywordsPath; path != "" {
		loaded, err := lexicon.LoadKeywords(path)
		if err != nil {
			logger.Debug("location keywords not loaded", zap.String("path", path), zap.Error(err))
		} else {
			keywords = loaded
		}
	}

	places := &lexicon.Places{}
	if path := cfg.LexiconCfg.PlacesPath; path != "" {
		loaded, err := lexicon.LoadPlaces(path)
		if err != nil {
			logger.Debug("places not loaded", zap.String("path", path), zap.Error(err))
		} else {
			places = loaded
		}
	}

	matcher := location.NewMatcher(lex, keywords)
	extractor := extract.NewExtractor(matcher)

	logger.Info("Extraction engine initialized",
		zap.Int("districts", len(lex.Districts())),
		zap.Int("microareas", len(lex.Microareas())),
		zap.Int("keywords", keywords.Len()),
		zap.Bool("places", !places.Empty()),
		zap.Int("questions", len(cfg.Questions)),
	)

	return &engine{
		lexicon:   lex,
		matcher:   matcher,
		extractor: extractor,
		merger:    dialogue.NewMerger(extractor, location.NewPrefixMatcher(lex, places)),
		resolver:  location.NewResolver(places),
		checker:   dialogue.NewChecker(cfg.Questions),
	}
}
