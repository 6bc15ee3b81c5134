package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4j-backed implementation of the ProblemRepository and ProblemWriter ports.
//
// A problem is stored as (:Problem {id})-[:HAS_PLACE]->(:Place) nodes, with one
// (:Place)-[:CONNECTS {position}]->(:Place) relationship per path definition.
// position keeps the declaration order, which drives exploration order.
type Neo4jProblemRepository struct {
	Driver   neo4j.DriverWithContext
	Database string
}

func NewNeo4jProblemRepository(driver neo4j.DriverWithContext, database string) *Neo4jProblemRepository {
	return &Neo4jProblemRepository{Driver: driver, Database: database}
}

func (r *Neo4jProblemRepository) GetProblem(
	ctx context.Context,
	id string,
) (_ *domain.ProblemDefinition, err error) {
	defer obs.Time(ctx, "problems.neo4j.GetProblem")(&err)

	if r.Driver == nil {
		return nil, errors.New("neo4j problem repository: driver is nil")
	}

	placesQuery := `
	MATCH (pr:Problem {id: $id})
	OPTIONAL MATCH (pr)-[:HAS_PLACE]->(p:Place)
	RETURN p.name AS name, p.utility AS utility, p.cost AS cost, p.time AS time
	`
	placeRes, err := neo4j.ExecuteQuery(ctx, r.Driver, placesQuery,
		map[string]any{"id": id},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(r.Database),
		neo4j.ExecuteQueryWithReadersRouting(),
	)
	if err != nil {
		return nil, fmt.Errorf("get problem %q: query places: %w", id, err)
	}
	if len(placeRes.Records) == 0 {
		return nil, fmt.Errorf("get problem %q: %w", id, domain.ErrProblemNotFound)
	}

	def := &domain.ProblemDefinition{Places: map[string]domain.PlaceSpec{}}
	for _, rec := range placeRes.Records {
		name, ok := recordString(rec, "name")
		if !ok {
			// Problem without places.
			continue
		}

		var spec domain.PlaceSpec
		if spec.Utility, err = recordFloat(rec, "utility"); err != nil {
			return nil, fmt.Errorf("get problem %q: place %q: %w", id, name, err)
		}
		if spec.Cost, err = recordFloat(rec, "cost"); err != nil {
			return nil, fmt.Errorf("get problem %q: place %q: %w", id, name, err)
		}
		if spec.Time, err = recordFloat(rec, "time"); err != nil {
			return nil, fmt.Errorf("get problem %q: place %q: %w", id, name, err)
		}
		def.Places[name] = spec
	}

	pathsQuery := `
	MATCH (pr:Problem {id: $id})-[:HAS_PLACE]->(a:Place)-[c:CONNECTS]->(b:Place)<-[:HAS_PLACE]-(pr)
	RETURN a.name AS city1, b.name AS city2, c.time AS time, c.utility AS utility
	ORDER BY c.position
	`
	pathRes, err := neo4j.ExecuteQuery(ctx, r.Driver, pathsQuery,
		map[string]any{"id": id},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(r.Database),
		neo4j.ExecuteQueryWithReadersRouting(),
	)
	if err != nil {
		return nil, fmt.Errorf("get problem %q: query paths: %w", id, err)
	}

	for i, rec := range pathRes.Records {
		var spec domain.PathSpec
		spec.City1, _ = recordString(rec, "city1")
		spec.City2, _ = recordString(rec, "city2")
		if spec.Time, err = recordFloat(rec, "time"); err != nil {
			return nil, fmt.Errorf("get problem %q: path #%d: %w", id, i+1, err)
		}
		if spec.Utility, err = recordFloat(rec, "utility"); err != nil {
			return nil, fmt.Errorf("get problem %q: path #%d: %w", id, i+1, err)
		}
		def.Paths = append(def.Paths, spec)
	}

	return def, nil
}

func (r *Neo4jProblemRepository) ListProblems(ctx context.Context) ([]string, error) {
	if r.Driver == nil {
		return nil, errors.New("neo4j problem repository: driver is nil")
	}

	res, err := neo4j.ExecuteQuery(ctx, r.Driver,
		`MATCH (pr:Problem) RETURN pr.id AS id ORDER BY id`,
		nil,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(r.Database),
		neo4j.ExecuteQueryWithReadersRouting(),
	)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}

	ids := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		if id, ok := recordString(rec, "id"); ok {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

// Replace the problem stored under id in a single write transaction.
func (r *Neo4jProblemRepository) SaveProblem(ctx context.Context, id string, def domain.ProblemDefinition) error {
	if r.Driver == nil {
		return errors.New("neo4j problem repository: driver is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("save problem: %w", &domain.ConfigurationError{Field: "problem id", Reason: "must be non-empty"})
	}
	// Unknown cities would be silently dropped by the MATCH below.
	if _, err := domain.BuildGraph(def); err != nil {
		return fmt.Errorf("save problem %q: %w", id, err)
	}

	places := make([]map[string]any, 0, len(def.Places))
	for name, p := range def.Places {
		places = append(places, map[string]any{
			"name":    name,
			"utility": p.Utility,
			"cost":    p.Cost,
			"time":    p.Time,
		})
	}

	paths := make([]map[string]any, 0, len(def.Paths))
	for i, p := range def.Paths {
		paths = append(paths, map[string]any{
			"position": int64(i),
			"city1":    p.City1,
			"city2":    p.City2,
			"time":     p.Time,
			"utility":  p.Utility,
		})
	}

	statements := []string{
		`MATCH (pr:Problem {id: $id})
		OPTIONAL MATCH (pr)-[:HAS_PLACE]->(p:Place)
		DETACH DELETE pr, p`,
		`CREATE (pr:Problem {id: $id})
		WITH pr
		UNWIND $places AS pl
		CREATE (pr)-[:HAS_PLACE]->(:Place {name: pl.name, utility: pl.utility, cost: pl.cost, time: pl.time})`,
		`MATCH (pr:Problem {id: $id})
		UNWIND $paths AS pa
		MATCH (pr)-[:HAS_PLACE]->(a:Place {name: pa.city1})
		MATCH (pr)-[:HAS_PLACE]->(b:Place {name: pa.city2})
		CREATE (a)-[:CONNECTS {position: pa.position, time: pa.time, utility: pa.utility}]->(b)`,
	}
	params := map[string]any{"id": id, "places": places, "paths": paths}

	session := r.Driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: r.Database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for i, stmt := range statements {
			res, err := tx.Run(ctx, stmt, params)
			if err != nil {
				return nil, fmt.Errorf("run statement #%d: %w", i+1, err)
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, fmt.Errorf("consume statement #%d: %w", i+1, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("save problem %q: %w", id, err)
	}

	return nil
}

func recordString(rec *neo4j.Record, key string) (string, bool) {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// recordFloat accepts both Neo4j floats and integers.
func recordFloat(rec *neo4j.Record, key string) (float64, error) {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0, fmt.Errorf("missing property %q", key)
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("property %q has unexpected type %T", key, v)
	}
}
