package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/aqtareen/Taqreeb/internal/domain/accounts"
	"github.com/aqtareen/Taqreeb/internal/domain/events"
	"github.com/aqtareen/Taqreeb/internal/domain/tasks"
	"github.com/aqtareen/Taqreeb/internal/domain/teams"
	"github.com/aqtareen/Taqreeb/internal/domain/vendors"
	"github.com/aqtareen/Taqreeb/internal/domain/venues"
)

// serve routes req through a ServeMux so path values are populated.
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	res := httptest.NewRecorder()
	mux.ServeHTTP(res, req)
	return res
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

type stubAuthService struct {
	registerFn     func(in accounts.RegisterInput) (int64, error)
	authenticateFn func(email, password string) (accounts.Profile, error)
}

func (s stubAuthService) Register(_ context.Context, in accounts.RegisterInput) (int64, error) {
	return s.registerFn(in)
}

func (s stubAuthService) Authenticate(_ context.Context, email, password string) (accounts.Profile, error) {
	return s.authenticateFn(email, password)
}

type stubVenueService struct {
	listFn   func() ([]venues.Venue, error)
	getFn    func(id int64) (venues.Venue, error)
	createFn func(in venues.Input) (venues.Venue, error)
	updateFn func(id int64, in venues.Input) (venues.Venue, error)
	deleteFn func(id int64) error
}

func (s stubVenueService) List(context.Context) ([]venues.Venue, error) { return s.listFn() }
func (s stubVenueService) Get(_ context.Context, id int64) (venues.Venue, error) {
	return s.getFn(id)
}
func (s stubVenueService) Create(_ context.Context, in venues.Input) (venues.Venue, error) {
	return s.createFn(in)
}
func (s stubVenueService) Update(_ context.Context, id int64, in venues.Input) (venues.Venue, error) {
	return s.updateFn(id, in)
}
func (s stubVenueService) Delete(_ context.Context, id int64) error { return s.deleteFn(id) }

type stubEventService struct {
	listFn      func() ([]events.Event, error)
	getFn       func(id int64) (events.Event, error)
	getByNameFn func(name string) (events.Event, error)
	createFn    func(in events.CreateInput) (events.Event, error)
	updateFn    func(id int64, in events.Details) (events.Event, error)
	deleteFn    func(id int64) error
}

func (s stubEventService) List(context.Context) ([]events.Event, error) { return s.listFn() }
func (s stubEventService) Get(_ context.Context, id int64) (events.Event, error) {
	return s.getFn(id)
}
func (s stubEventService) GetByName(_ context.Context, name string) (events.Event, error) {
	return s.getByNameFn(name)
}
func (s stubEventService) Create(_ context.Context, in events.CreateInput) (events.Event, error) {
	return s.createFn(in)
}
func (s stubEventService) Update(_ context.Context, id int64, in events.Details) (events.Event, error) {
	return s.updateFn(id, in)
}
func (s stubEventService) Delete(_ context.Context, id int64) error { return s.deleteFn(id) }

type stubVendorService struct {
	listFn       func() ([]vendors.Vendor, error)
	getFn        func(id int64) (vendors.Vendor, error)
	createFn     func(in vendors.Input) (vendors.Vendor, error)
	deleteFn     func(id int64) error
	listItemsFn  func(vendorID int64) ([]vendors.Item, error)
	addItemFn    func(vendorID int64, in vendors.ItemInput) (vendors.Item, error)
	removeItemFn func(vendorID, itemID int64) error
}

func (s stubVendorService) List(context.Context) ([]vendors.Vendor, error) { return s.listFn() }
func (s stubVendorService) Get(_ context.Context, id int64) (vendors.Vendor, error) {
	return s.getFn(id)
}
func (s stubVendorService) Create(_ context.Context, in vendors.Input) (vendors.Vendor, error) {
	return s.createFn(in)
}
func (s stubVendorService) Delete(_ context.Context, id int64) error { return s.deleteFn(id) }
func (s stubVendorService) ListItems(_ context.Context, vendorID int64) ([]vendors.Item, error) {
	return s.listItemsFn(vendorID)
}
func (s stubVendorService) AddItem(_ context.Context, vendorID int64, in vendors.ItemInput) (vendors.Item, error) {
	return s.addItemFn(vendorID, in)
}
func (s stubVendorService) RemoveItem(_ context.Context, vendorID, itemID int64) error {
	return s.removeItemFn(vendorID, itemID)
}

type stubTeamService struct {
	listFn   func() ([]teams.Team, error)
	createFn func(in teams.Input) (teams.Team, error)
}

func (s stubTeamService) List(context.Context) ([]teams.Team, error) { return s.listFn() }
func (s stubTeamService) Create(_ context.Context, in teams.Input) (teams.Team, error) {
	return s.createFn(in)
}

type stubTaskService struct {
	listFn   func() ([]tasks.Task, error)
	getFn    func(id int64) (tasks.Task, error)
	createFn func(in tasks.Input) (tasks.Task, error)
	updateFn func(id int64, in tasks.Input) (tasks.Task, error)
	deleteFn func(id int64) error
}

func (s stubTaskService) List(context.Context) ([]tasks.Task, error) { return s.listFn() }
func (s stubTaskService) Get(_ context.Context, id int64) (tasks.Task, error) {
	return s.getFn(id)
}
func (s stubTaskService) Create(_ context.Context, in tasks.Input) (tasks.Task, error) {
	return s.createFn(in)
}
func (s stubTaskService) Update(_ context.Context, id int64, in tasks.Input) (tasks.Task, error) {
	return s.updateFn(id, in)
}
func (s stubTaskService) Delete(_ context.Context, id int64) error { return s.deleteFn(id) }
