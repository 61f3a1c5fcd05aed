// Package dashboard exposes one method per backend operation of the MPC
// dashboard API. Each method is a single Get or Post with a fixed path; results
// are returned exactly as the request client produced them.
package dashboard

import (
	"context"
	"strconv"

	"github.com/samvad-hq/mpc-dashboard/pkg/apiclient"
)

// Requester is the request surface the facade composes.
type Requester interface {
	Get(ctx context.Context, path string) (any, error)
	Post(ctx context.Context, path string, body any) (any, error)
}

const (
	pathFilms            = "/films"
	pathActors           = "/actors"
	pathCustomers        = "/customers"
	pathRentalStats      = "/mpc/stats/rentals"
	pathCustomerSpending = "/mpc/stats/customers"
	pathRevenueTrends    = "/mpc/stats/revenue"
	pathAnalyze          = "/mpc/analyze"
	pathGeneratePage     = "/mpc/generate-page"
)

// AnalyzeRequest is the body of POST /mpc/analyze.
type AnalyzeRequest struct {
	Query    string `json:"query"`
	DataType string `json:"dataType"`
}

// GeneratePageRequest is the body of POST /mpc/generate-page.
type GeneratePageRequest struct {
	PageName    string `json:"pageName"`
	Description string `json:"description"`
	DataType    string `json:"dataType"`
}

// API is the typed endpoint facade.
type API struct {
	r Requester
}

// New wraps a Requester, normally an *apiclient.Client.
func New(r Requester) *API {
	return &API{r: r}
}

// Films

func (a *API) Films(ctx context.Context, params apiclient.Params) (any, error) {
	return a.r.Get(ctx, pathFilms+apiclient.EncodeQuery(params))
}

func (a *API) Film(ctx context.Context, id int) (any, error) {
	return a.r.Get(ctx, itemPath(pathFilms, id))
}

// Actors

func (a *API) Actors(ctx context.Context, params apiclient.Params) (any, error) {
	return a.r.Get(ctx, pathActors+apiclient.EncodeQuery(params))
}

func (a *API) Actor(ctx context.Context, id int) (any, error) {
	return a.r.Get(ctx, itemPath(pathActors, id))
}

// Customers

func (a *API) Customers(ctx context.Context, params apiclient.Params) (any, error) {
	return a.r.Get(ctx, pathCustomers+apiclient.EncodeQuery(params))
}

func (a *API) Customer(ctx context.Context, id int) (any, error) {
	return a.r.Get(ctx, itemPath(pathCustomers, id))
}

// Statistics

func (a *API) FilmRentalStats(ctx context.Context) (any, error) {
	return a.r.Get(ctx, pathRentalStats)
}

func (a *API) CustomerSpending(ctx context.Context) (any, error) {
	return a.r.Get(ctx, pathCustomerSpending)
}

func (a *API) RevenueTrends(ctx context.Context) (any, error) {
	return a.r.Get(ctx, pathRevenueTrends)
}

// MPC functions

func (a *API) AnalyzeData(ctx context.Context, query, dataType string) (any, error) {
	return a.r.Post(ctx, pathAnalyze, AnalyzeRequest{Query: query, DataType: dataType})
}

func (a *API) GeneratePage(ctx context.Context, pageName, description, dataType string) (any, error) {
	return a.r.Post(ctx, pathGeneratePage, GeneratePageRequest{
		PageName:    pageName,
		Description: description,
		DataType:    dataType,
	})
}

func itemPath(base string, id int) string {
	return base + "/" + strconv.Itoa(id)
}
