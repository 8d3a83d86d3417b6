package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/ecoleta/pkg/database"
	"github.com/ghuser/ecoleta/pkg/logger"
	pointdomain "github.com/ghuser/ecoleta/services/point/domain"
	domainevents "github.com/ghuser/ecoleta/services/point/domain/events"
	"github.com/ghuser/ecoleta/services/point/domain/models"
	"github.com/ghuser/ecoleta/services/point/domain/repositories"
)

var (
	insertPointSQL     = regexp.QuoteMeta("INSERT INTO points")
	insertPointItemSQL = regexp.QuoteMeta("INSERT INTO point_items")
	pointColumns       = []string{"id", "image", "name", "email", "whatsapp", "latitude", "longitude", "city", "uf"}
)

type recordingPublisher struct {
	topic string
	msgs  []*message.Message
	err   error
}

func (p *recordingPublisher) PublishInTx(_ context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	if tx == nil {
		return errors.New("expected a transaction")
	}
	p.topic = topic
	p.msgs = append(p.msgs, msgs...)
	return p.err
}

func newRepo(t *testing.T, bus TxPublisher) (*PointRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewPointRepository(database.New(conn, logger.Discard()), bus), mock
}

func samplePoint() *models.Point {
	return models.NewPoint("abc-market.jpg", "Mercado", "m@x.com", "11999999999",
		-23.55, -46.63, "São Paulo", "SP", []int64{1, 3, 5})
}

func TestSave_InsertsPointAndEveryItemInOneTransaction(t *testing.T) {
	bus := &recordingPublisher{}
	repo, mock := newRepo(t, bus)

	mock.ExpectBegin()
	mock.ExpectQuery(insertPointSQL).
		WithArgs("abc-market.jpg", "Mercado", "m@x.com", "11999999999", -23.55, -46.63, "São Paulo", "SP").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	for _, itemID := range []int64{1, 3, 5} {
		mock.ExpectExec(insertPointItemSQL).WithArgs(int64(7), itemID).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	p := samplePoint()
	if err := repo.Save(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 7 {
		t.Fatalf("expected id 7, got %d", p.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}

	if bus.topic != domainevents.TopicPointCreated || len(bus.msgs) != 1 {
		t.Fatalf("expected one %s message, got %q x%d", domainevents.TopicPointCreated, bus.topic, len(bus.msgs))
	}
	var evt domainevents.PointCreatedEvent
	if err := json.Unmarshal(bus.msgs[0].Payload, &evt); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if evt.PointID != 7 || len(evt.ItemIDs) != 3 || evt.Version != 1 {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestSave_FailureAfterPointInsertRollsBack(t *testing.T) {
	bus := &recordingPublisher{}
	repo, mock := newRepo(t, bus)

	mock.ExpectBegin()
	mock.ExpectQuery(insertPointSQL).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectExec(insertPointItemSQL).WithArgs(int64(8), int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertPointItemSQL).WithArgs(int64(8), int64(3)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "point_items_item_id_fkey"})
	mock.ExpectRollback()

	p := samplePoint()
	err := repo.Save(context.Background(), p)
	if err == nil {
		t.Fatal("expected error")
	}
	if p.ID != 0 {
		t.Fatalf("id must stay unset after rollback, got %d", p.ID)
	}
	if len(bus.msgs) != 0 {
		t.Fatal("no event may be published for a rolled back point")
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Fatalf("expected wrapped PgError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSave_PublishFailureRollsBack(t *testing.T) {
	bus := &recordingPublisher{err: errors.New("outbox table missing")}
	repo, mock := newRepo(t, bus)

	mock.ExpectBegin()
	mock.ExpectQuery(insertPointSQL).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	for _, itemID := range []int64{1, 3, 5} {
		mock.ExpectExec(insertPointItemSQL).WithArgs(int64(9), itemID).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectRollback()

	if err := repo.Save(context.Background(), samplePoint()); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSave_WithoutBus(t *testing.T) {
	repo, mock := newRepo(t, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(insertPointSQL).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(insertPointItemSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p := models.NewPoint("a.png", "n", "e@x.com", "1", 0, 0, "c", "SP", []int64{2})
	if err := repo.Save(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetDetail(t *testing.T) {
	repo, mock := newRepo(t, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM points")).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(pointColumns).
			AddRow(7, "abc-market.jpg", "Mercado", "m@x.com", "119", -23.55, -46.63, "São Paulo", "SP"))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN point_items")).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "image"}).
			AddRow(1, "Lâmpadas", "lampadas.svg").
			AddRow(3, "Papéis e Papelão", "papeis-papelao.svg"))

	detail, err := repo.GetDetail(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Point.Name != "Mercado" || detail.Point.UF != "SP" {
		t.Fatalf("unexpected point %+v", detail.Point)
	}
	if len(detail.Items) != 2 || detail.Items[1].Title != "Papéis e Papelão" {
		t.Fatalf("unexpected items %+v", detail.Items)
	}
	if len(detail.Point.ItemIDs) != 2 || detail.Point.ItemIDs[0] != 1 || detail.Point.ItemIDs[1] != 3 {
		t.Fatalf("unexpected item ids %v", detail.Point.ItemIDs)
	}
}

func TestGetDetail_NotFound(t *testing.T) {
	repo, mock := newRepo(t, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM points")).WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(pointColumns))

	_, err := repo.GetDetail(context.Background(), 99)
	if !errors.Is(err, pointdomain.ErrPointNotFound) {
		t.Fatalf("expected ErrPointNotFound, got %v", err)
	}
}

func TestList_PassesFilters(t *testing.T) {
	repo, mock := newRepo(t, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM points")).
		WithArgs("São Paulo", "SP", "{1,3}").
		WillReturnRows(sqlmock.NewRows(pointColumns).
			AddRow(7, "a.jpg", "Mercado", "m@x.com", "119", -23.55, -46.63, "São Paulo", "SP"))

	points, err := repo.List(context.Background(), repositories.PointFilter{City: "São Paulo", UF: "SP", ItemIDs: []int64{1, 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 || points[0].ID != 7 {
		t.Fatalf("unexpected points %+v", points)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestList_NoFilterSendsEmptyArray(t *testing.T) {
	repo, mock := newRepo(t, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM points")).
		WithArgs("", "", "{}").
		WillReturnRows(sqlmock.NewRows(pointColumns))

	points, err := repo.List(context.Background(), repositories.PointFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("expected no points, got %d", len(points))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
