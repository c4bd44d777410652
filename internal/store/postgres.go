package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// columnsByCollection is the allowlist consulted when building SQL. Field
// and column names never come from user input unchecked.
var columnsByCollection = map[string]map[string]bool{
	CollectionSubmissions: {
		"id": true, "title": true, "recruiter_id": true, "candidate": true, "created_at": true,
	},
	CollectionInterviews: {
		"id": true, "recruiter_id": true, "title": true, "job_description": true, "created_at": true,
	},
	CollectionQuestions: {
		"id": true, "interview_id": true, "text": true, "order_index": true, "created_at": true,
	},
	CollectionRecruiters: {
		"id": true, "full_name": true, "company": true,
	},
}

// PostgresStore serves the same interface from a Postgres pool, used for
// self-hosted deployments. Rows are selected as to_jsonb so both backends
// hand callers identical JSON documents.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Select fetches rows matching q as JSON documents.
func (s *PostgresStore) Select(ctx context.Context, collection string, q Query) ([]json.RawMessage, error) {
	cols, ok := columnsByCollection[collection]
	if !ok {
		return nil, requestErr(collection, "select", "unknown collection", nil)
	}

	query := fmt.Sprintf("SELECT to_jsonb(t) FROM %s t", collection)
	args := []any{}
	argNum := 1

	var clauses []string
	for _, c := range q.Conds {
		if !cols[c.Field] {
			return nil, requestErr(collection, "select", "unknown field "+c.Field, nil)
		}
		switch c.Op {
		case OpIn:
			clauses = append(clauses, fmt.Sprintf("t.%s = ANY($%d)", c.Field, argNum))
		default:
			clauses = append(clauses, fmt.Sprintf("t.%s = $%d", c.Field, argNum))
		}
		args = append(args, c.Value)
		argNum++
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	if q.OrderBy != "" {
		if !cols[q.OrderBy] {
			return nil, requestErr(collection, "select", "unknown order field "+q.OrderBy, nil)
		}
		query += " ORDER BY t." + q.OrderBy
		if q.Desc {
			query += " DESC"
		}
	}
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, q.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, requestErr(collection, "select", "query failed", err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, requestErr(collection, "select", "scanning row", err)
		}
		out = append(out, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, requestErr(collection, "select", "reading rows", err)
	}
	return out, nil
}

// Insert creates a record and returns the created row as JSON.
func (s *PostgresStore) Insert(ctx context.Context, collection string, record any) (json.RawMessage, error) {
	cols, ok := columnsByCollection[collection]
	if !ok {
		return nil, requestErr(collection, "insert", "unknown collection", nil)
	}

	fields, err := recordFields(record)
	if err != nil {
		return nil, requestErr(collection, "insert", "encoding record", err)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if !cols[name] {
			return nil, requestErr(collection, "insert", "unknown field "+name, nil)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[name]
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING to_jsonb(%s)",
		collection, strings.Join(names, ", "), strings.Join(placeholders, ", "), collection,
	)

	var doc []byte
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&doc); err != nil {
		return nil, requestErr(collection, "insert", "insert failed", err)
	}
	return json.RawMessage(doc), nil
}

// Update patches a record by id.
func (s *PostgresStore) Update(ctx context.Context, collection string, id uuid.UUID, patch map[string]any) error {
	cols, ok := columnsByCollection[collection]
	if !ok {
		return requestErr(collection, "update", "unknown collection", nil)
	}
	if len(patch) == 0 {
		return nil
	}

	names := make([]string, 0, len(patch))
	for name := range patch {
		if !cols[name] {
			return requestErr(collection, "update", "unknown field "+name, nil)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		sets[i] = fmt.Sprintf("%s = $%d", name, i+1)
		args = append(args, patch[name])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", collection, strings.Join(sets, ", "), len(args))
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return requestErr(collection, "update", "update failed", err)
	}
	if tag.RowsAffected() == 0 {
		return requestErr(collection, "update", "record not found: "+id.String(), nil)
	}
	return nil
}

// Delete removes a record by id.
func (s *PostgresStore) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	if !KnownCollection(collection) {
		return requestErr(collection, "delete", "unknown collection", nil)
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", collection)
	if _, err := s.pool.Exec(ctx, query, id); err != nil {
		return requestErr(collection, "delete", "delete failed", err)
	}
	return nil
}

// recordFields flattens a record into column/value pairs via its JSON form.
// Nested objects (the candidate document) stay as JSON for a jsonb column.
func recordFields(record any) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for name, value := range fields {
		if nested, ok := value.(map[string]any); ok {
			doc, err := json.Marshal(nested)
			if err != nil {
				return nil, err
			}
			fields[name] = doc
		}
	}
	return fields, nil
}
