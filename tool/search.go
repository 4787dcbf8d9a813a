package tool

import (
	"context"
	"fmt"

	"github.com/reagent-dev/reagent/internal/util"
)

// searchArgs describes the search tool's argument schema.
type searchArgs struct {
	Query string `json:"query" description:"搜索关键词或问题"`
}

// Search is a stand-in search tool. It returns a canned result referencing
// the query; a real deployment would swap in an actual search backend behind
// the same Tool interface.
type Search struct{}

// NewSearch returns the built-in search tool.
func NewSearch() *Search { return &Search{} }

// Name implements Tool.
func (s *Search) Name() string { return "search" }

// Description implements Tool.
func (s *Search) Description() string { return "用于搜索信息" }

// Parameters implements Tool.
func (s *Search) Parameters() map[string]any { return util.CreateSchema(searchArgs{}) }

// Call always succeeds with a templated result embedding the query.
func (s *Search) Call(_ context.Context, args map[string]any) (string, error) {
	query, _ := args["query"].(string)
	return fmt.Sprintf("这是关于'%s'的搜索结果。在实际应用中，这里会返回真实的搜索结果。", query), nil
}
