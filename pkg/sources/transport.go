package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Response is what a Transport hands back for a completed request.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs GET requests. Errors are reserved for requests that
// produced no status at all.
type Transport interface {
	Get(ctx context.Context, url string) (Response, error)
}

type RestyTransport struct {
	client *resty.Client
}

func NewRestyTransport(timeout time.Duration, userAgent string) *RestyTransport {
	client := resty.New()
	client.SetTimeout(timeout)
	if userAgent != "" {
		client.SetHeader("user-agent", userAgent)
	}
	instrument(client, "sources/http")
	return &RestyTransport{client: client}
}

func (t *RestyTransport) Get(ctx context.Context, url string) (Response, error) {
	res, err := t.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return Response{}, fmt.Errorf("get %s: %w", url, err)
	}
	return Response{StatusCode: res.StatusCode(), Body: res.Body()}, nil
}

func instrument(client *resty.Client, tracerName string) {
	tracer := otel.Tracer(tracerName)

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), fmt.Sprintf("http %s", req.Method))
		req.SetContext(ctx)
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		span := trace.SpanFromContext(res.Request.Context())
		defer span.End()

		span.SetAttributes(
			attribute.String("http.url", res.Request.URL),
			attribute.Int("http.status_code", res.StatusCode()),
			attribute.Int("http.response_size", len(res.Body())),
		)
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		span := trace.SpanFromContext(req.Context())
		defer span.End()

		span.SetAttributes(attribute.String("http.url", req.URL))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	})
}
