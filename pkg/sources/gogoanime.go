package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kerbaras/enjoi/pkg/data"
	"github.com/kerbaras/enjoi/pkg/logger"
	"github.com/kerbaras/enjoi/pkg/parsing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("sources/gogoanime")

type GogoAnime struct {
	transport Transport
	baseURL   string
	ajaxURL   string
	log       zerolog.Logger
}

func NewGogoAnime(transport Transport, baseURL, ajaxURL string) *GogoAnime {
	return &GogoAnime{
		transport: transport,
		baseURL:   strings.TrimRight(baseURL, "/"),
		ajaxURL:   strings.TrimRight(ajaxURL, "/"),
		log:       logger.WithComponent("gogoanime"),
	}
}

func (g *GogoAnime) Name() string {
	return "gogoanime"
}

func (g *GogoAnime) AnimeList(ctx context.Context, page int) ([]data.Anime, error) {
	target := fmt.Sprintf("%s/anime-list.html?page=%d", g.baseURL, page)
	return fetch(ctx, g, "AnimeList", target, strconv.Itoa(page), parsing.ParseAnimeList)
}

func (g *GogoAnime) Search(ctx context.Context, text string) ([]data.SearchResult, error) {
	target := fmt.Sprintf(
		"%s/site/loadAjaxSearch?keyword=%s&id=-1&link_web=%s",
		g.ajaxURL,
		url.QueryEscape(text),
		url.QueryEscape(g.baseURL+"/"),
	)
	return fetch(ctx, g, "Search", target, text, parsing.ParseSearchResults)
}

func (g *GogoAnime) Details(ctx context.Context, slug string) (data.AnimeDetails, error) {
	target := fmt.Sprintf("%s/category/%s", g.baseURL, slug)
	return fetch(ctx, g, "Details", target, slug, parsing.ParseAnimeDetails)
}

func (g *GogoAnime) Episode(ctx context.Context, slug string, episode int) (data.Episode, error) {
	target := fmt.Sprintf("%s/%s-episode-%d", g.baseURL, slug, episode)
	return fetch(ctx, g, "Episode", target, slug, parsing.ParseEpisode)
}

func fetch[T any](ctx context.Context, g *GogoAnime, op, target, identifier string, extract func([]byte) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(
		attribute.String("url", target),
		attribute.String("identifier", identifier),
	)

	var zero T
	res, err := g.transport.Get(ctx, target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return zero, err
	}
	g.log.Debug().
		Str("op", op).
		Str("url", target).
		Int("status", res.StatusCode).
		Int("bytes", len(res.Body)).
		Msg("fetched")

	out, err := resolve(res, identifier, extract)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return zero, err
	}
	return out, nil
}

// resolve maps a transport outcome onto an extractor result. Every operation
// goes through here so that 200, 404 and anything else behave the same way.
func resolve[T any](res Response, identifier string, extract func([]byte) (T, error)) (T, error) {
	var zero T
	switch res.StatusCode {
	case http.StatusOK:
		return extract(res.Body)
	case http.StatusNotFound:
		return zero, &NotFoundError{Identifier: identifier}
	default:
		return zero, &TransportError{Code: res.StatusCode}
	}
}
