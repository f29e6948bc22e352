package mcpsrv

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/qyinm/catalogtui/catalog"
	"github.com/qyinm/catalogtui/mcpsrv/dto"
	"github.com/qyinm/catalogtui/types"
)

// maxBrowsePages bounds how many pages one catalog_browse call may expand.
const maxBrowsePages = 50

type catalogBrowseArgs struct {
	Query    string `json:"query,omitempty" jsonschema:"Optional case-insensitive title substring"`
	Category string `json:"category,omitempty" jsonschema:"Optional category value from category_list; empty means all"`
	Pages    int    `json:"pages,omitempty" jsonschema:"Number of pages to load (default 1)"`
}

type categoryListArgs struct {
	Query  string `json:"query,omitempty" jsonschema:"Optional category search query"`
	Offset int    `json:"offset,omitempty" jsonschema:"Optional pagination offset"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Optional page size limit"`
}

type productGetArgs struct {
	ID int `json:"id" jsonschema:"Product id"`
}

type catalogBrowseOutput struct {
	Query    string        `json:"query"`
	Category string        `json:"category"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int           `json:"total"`
	Filtered int           `json:"filtered"`
	HasMore  bool          `json:"has_more"`
	Items    []dto.Product `json:"items"`
}

type categoryListOutput struct {
	Query      string         `json:"query"`
	Offset     int            `json:"offset"`
	Limit      int            `json:"limit"`
	NextOffset int            `json:"next_offset"`
	HasMore    bool           `json:"has_more"`
	Total      int            `json:"total"`
	Items      []dto.Category `json:"items"`
}

type productGetOutput struct {
	Item dto.ProductDetail `json:"item"`
}

type cacheClearOutput struct {
	Status string `json:"status"`
}

// ServerOptions tunes the tool set. EnableAdmin registers cache_clear; the
// HTTP server only sets it when an API key guards the endpoint.
type ServerOptions struct {
	EnableAdmin bool
	PageSize    int
	Currency    string
}

type cacheClearSource interface {
	ClearCache()
}

func NewServer(source types.ProductSource, version string, opts *ServerOptions, logger *zap.Logger) *mcp.Server {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if opts == nil {
		opts = &ServerOptions{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "catalogtui", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "catalog_browse",
		Description: "Browse the product catalog with an optional title search and category filter, page by page.",
	}, logged(logger, "catalog_browse", func(ctx context.Context, req *mcp.CallToolRequest, args catalogBrowseArgs) (*mcp.CallToolResult, catalogBrowseOutput, error) {
		return catalogBrowseHandler(ctx, req, args, source, opts.PageSize)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "category_list",
		Description: "List product categories offered by the catalog.",
	}, logged(logger, "category_list", func(ctx context.Context, req *mcp.CallToolRequest, args categoryListArgs) (*mcp.CallToolResult, categoryListOutput, error) {
		return categoryListHandler(ctx, req, args, source)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "product_get",
		Description: "Get a single product by id.",
	}, logged(logger, "product_get", func(ctx context.Context, req *mcp.CallToolRequest, args productGetArgs) (*mcp.CallToolResult, productGetOutput, error) {
		return productGetHandler(ctx, req, args, source, opts.Currency)
	}))

	if opts.EnableAdmin {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "cache_clear",
			Description: "Clear the provider response cache (admin).",
		}, logged(logger, "cache_clear", func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, cacheClearOutput, error) {
			return cacheClearHandler(ctx, req, source)
		}))
	}

	return server
}

// logged records the outcome of every tool call.
func logged[In, Out any](logger *zap.Logger, tool string, h mcp.ToolHandlerFor[In, Out]) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args In) (*mcp.CallToolResult, Out, error) {
		start := time.Now()
		result, out, err := h(ctx, req, args)
		fields := []zap.Field{
			zap.String("tool", tool),
			zap.Duration("elapsed", time.Since(start)),
		}
		switch {
		case err != nil:
			logger.Error("tool call failed", append(fields, zap.Error(err))...)
		case result != nil && result.IsError:
			logger.Warn("tool call rejected", append(fields, zap.String("reason", resultText(result)))...)
		default:
			logger.Info("tool call", fields...)
		}
		return result, out, err
	}
}

// loadCatalog runs the loader once and returns a ready state.
func loadCatalog(ctx context.Context, source types.ProductSource, pageSize int) (catalog.State, error) {
	s := catalog.Reduce(catalog.NewState(pageSize), catalog.Load(ctx, source))
	if s.Failed() {
		return s, s.Err()
	}
	return s, nil
}

func catalogBrowseHandler(ctx context.Context, _ *mcp.CallToolRequest, args catalogBrowseArgs, source types.ProductSource, pageSize int) (*mcp.CallToolResult, catalogBrowseOutput, error) {
	pages := args.Pages
	if pages == 0 {
		pages = 1
	}
	if pages < 1 || pages > maxBrowsePages {
		return errorToolResult(fmt.Sprintf("pages must be between 1 and %d", maxBrowsePages)), catalogBrowseOutput{}, nil
	}

	s, err := loadCatalog(ctx, source, pageSize)
	if err != nil {
		return errorToolResult("load catalog failed"), catalogBrowseOutput{}, nil
	}

	category := strings.TrimSpace(args.Category)
	if category != "" && !slices.ContainsFunc(s.Options(), func(o types.CategoryOption) bool { return o.Value() == category }) {
		return errorToolResult(fmt.Sprintf("unknown category %q; see category_list", args.Category)), catalogBrowseOutput{}, nil
	}

	s = catalog.Reduce(s, catalog.FilterCommitted{Search: args.Query, Category: category})
	for i := 1; i < pages && !s.Exhausted(); i++ {
		s = catalog.Reduce(s, catalog.LoadMoreRequested{})
	}

	return nil, catalogBrowseOutput{
		Query:    args.Query,
		Category: category,
		Page:     s.Page(),
		PageSize: s.PageSize(),
		Total:    s.Total(),
		Filtered: s.FilteredCount(),
		HasMore:  !s.Exhausted(),
		Items:    dto.FromProducts(s.Window()),
	}, nil
}

func categoryListHandler(ctx context.Context, _ *mcp.CallToolRequest, args categoryListArgs, source types.ProductSource) (*mcp.CallToolResult, categoryListOutput, error) {
	categories, err := source.GetCategories(ctx)
	if err != nil {
		return errorToolResult("fetch categories failed"), categoryListOutput{}, nil
	}

	query := strings.TrimSpace(strings.ToLower(args.Query))
	all := catalog.Options(categories)
	filtered := make([]types.CategoryOption, 0, len(all))
	for _, o := range all {
		if query == "" {
			filtered = append(filtered, o)
			continue
		}
		if strings.Contains(strings.ToLower(o.Label()), query) || strings.Contains(strings.ToLower(o.Value()), query) {
			filtered = append(filtered, o)
		}
	}

	limit := args.Limit
	if limit <= 0 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}
	offset := min(max(args.Offset, 0), len(filtered))
	end := min(offset+limit, len(filtered))
	page := filtered[offset:end]
	nextOffset := end
	hasMore := end < len(filtered)
	if !hasMore {
		nextOffset = -1
	}

	return nil, categoryListOutput{
		Query:      args.Query,
		Offset:     offset,
		Limit:      limit,
		NextOffset: nextOffset,
		HasMore:    hasMore,
		Total:      len(filtered),
		Items:      dto.FromCategories(page),
	}, nil
}

func productGetHandler(ctx context.Context, _ *mcp.CallToolRequest, args productGetArgs, source types.ProductSource, currency string) (*mcp.CallToolResult, productGetOutput, error) {
	if args.ID <= 0 {
		return errorToolResult("id must be a positive integer"), productGetOutput{}, nil
	}

	s, err := loadCatalog(ctx, source, 0)
	if err != nil {
		return errorToolResult("load catalog failed"), productGetOutput{}, nil
	}

	p, err := s.Product(args.ID)
	if errors.Is(err, catalog.ErrNotFound) {
		return errorToolResult(fmt.Sprintf("product %d not found", args.ID)), productGetOutput{}, nil
	}
	if err != nil {
		return errorToolResult("load catalog failed"), productGetOutput{}, nil
	}

	return nil, productGetOutput{Item: dto.FromProductDetail(p, currency)}, nil
}

func cacheClearHandler(_ context.Context, _ *mcp.CallToolRequest, source types.ProductSource) (*mcp.CallToolResult, cacheClearOutput, error) {
	clearable, ok := source.(cacheClearSource)
	if !ok {
		return errorToolResult("cache clear is not supported by this source"), cacheClearOutput{}, nil
	}
	clearable.ClearCache()
	return nil, cacheClearOutput{Status: "ok"}, nil
}

func errorToolResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

func resultText(result *mcp.CallToolResult) string {
	var parts []string
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "; ")
}
