package vector

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

const (
	qdrantGRPCPort = 6334
	qdrantRESTPort = 6333
)

// qdrantAPI is the subset of *qdrant.Client used by QdrantCollection.
type qdrantAPI interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Count(ctx context.Context, request *qdrant.CountPoints) (uint64, error)
	Close() error
}

// QdrantCollection stores points in a Qdrant collection over gRPC.
type QdrantCollection struct {
	client     qdrantAPI
	name       string
	dimensions int
	logger     *zap.Logger
}

// QdrantOption configures a QdrantCollection.
type QdrantOption func(*QdrantCollection)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) QdrantOption {
	return func(q *QdrantCollection) {
		q.logger = l
	}
}

// NewQdrantCollection connects to the Qdrant server at rawURL ("host:port" or "http(s)://host:port").
func NewQdrantCollection(rawURL, apiKey, name string, dimensions int, opts ...QdrantOption) (*QdrantCollection, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	host, port, useTLS, err := parseQdrantURL(rawURL)
	if err != nil {
		return nil, err
	}
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}
	q := newQdrantCollection(client, name, dimensions, opts...)
	q.logger.Debug("qdrant client created", zap.String("host", host), zap.Int("port", port), zap.String("collection", name))
	return q, nil
}

func newQdrantCollection(client qdrantAPI, name string, dimensions int, opts ...QdrantOption) *QdrantCollection {
	q := &QdrantCollection{
		client:     client,
		name:       name,
		dimensions: dimensions,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// parseQdrantURL splits a Qdrant address into host and gRPC port. The REST port is mapped to
// the gRPC port since the client only speaks gRPC.
func parseQdrantURL(raw string) (string, int, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "localhost", qdrantGRPCPort, false, nil
	}
	useTLS := false
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", 0, false, fmt.Errorf("invalid qdrant url %q: %w", raw, err)
		}
		useTLS = u.Scheme == "https"
		raw = u.Host
	}
	host, portStr, err := net.SplitHostPort(raw)
	if err != nil {
		// No port given.
		return raw, qdrantGRPCPort, useTLS, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, false, fmt.Errorf("invalid qdrant port %q", portStr)
	}
	if port == qdrantRESTPort {
		port = qdrantGRPCPort
	}
	return host, port, useTLS, nil
}

// EnsureCollection creates the collection with cosine distance if it does not exist.
func (q *QdrantCollection) EnsureCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.name)
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", q.name, err)
	}
	if exists {
		return nil
	}
	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(q.dimensions),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", q.name, err)
	}
	q.logger.Info("created vector collection", zap.String("collection", q.name), zap.Int("dimensions", q.dimensions))
	return nil
}

// Upsert writes all points in one request and waits for them to be applied.
func (q *QdrantCollection) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	structs := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		if len(p.Vector) != q.dimensions {
			return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(p.Vector), q.dimensions)
		}
		payload := make(map[string]any, len(p.Payload))
		for k, v := range p.Payload {
			payload[k] = v
		}
		structs = append(structs, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(payload),
		})
	}
	wait := true
	if _, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.name,
		Wait:           &wait,
		Points:         structs,
	}); err != nil {
		return fmt.Errorf("failed to upsert %d points: %w", len(points), err)
	}
	return nil
}

// Search queries the collection with exact-match payload conditions.
func (q *QdrantCollection) Search(ctx context.Context, req SearchRequest) ([]ScoredPoint, error) {
	if len(req.Vector) != q.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(req.Vector), q.dimensions)
	}
	if req.Limit <= 0 {
		return nil, nil
	}
	limit := uint64(req.Limit)
	query := &qdrant.QueryPoints{
		CollectionName: q.name,
		Query:          qdrant.NewQuery(req.Vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if len(req.Filter.Must) > 0 {
		conds := make([]*qdrant.Condition, 0, len(req.Filter.Must))
		for k, v := range req.Filter.Must {
			conds = append(conds, qdrant.NewMatch(k, v))
		}
		query.Filter = &qdrant.Filter{Must: conds}
	}
	hits, err := q.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", q.name, err)
	}
	results := make([]ScoredPoint, 0, len(hits))
	for _, h := range hits {
		payload := make(map[string]string, len(h.GetPayload()))
		for k, v := range h.GetPayload() {
			payload[k] = v.GetStringValue()
		}
		results = append(results, ScoredPoint{
			ID:      pointIDString(h.GetId()),
			Score:   float64(h.GetScore()),
			Payload: payload,
		})
	}
	return results, nil
}

func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return strconv.FormatUint(id.GetNum(), 10)
}

// Count returns the exact number of points in the collection.
func (q *QdrantCollection) Count(ctx context.Context) (int, error) {
	exact := true
	n, err := q.client.Count(ctx, &qdrant.CountPoints{CollectionName: q.name, Exact: &exact})
	if err != nil {
		return 0, fmt.Errorf("failed to count collection %s: %w", q.name, err)
	}
	return int(n), nil
}

// Dimensions returns the vector size.
func (q *QdrantCollection) Dimensions() int {
	return q.dimensions
}

// Close closes the gRPC connection.
func (q *QdrantCollection) Close() error {
	return q.client.Close()
}
