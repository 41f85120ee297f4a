package pagination

// PaginationStrategy abstracts how Params map onto a store query, keeping
// handlers independent of the concrete scheme.
type PaginationStrategy interface {
	CalculateQuery(params Params) QueryParams
	// BuildMetadata turns a query result into response metadata. hasMore
	// only matters for cursor schemes and is ignored by OffsetStrategy.
	BuildMetadata(params Params, total int64, hasMore bool) Metadata
}

// QueryParams carries the computed query inputs. Cursor and After stay nil
// under offset pagination.
type QueryParams struct {
	Offset int
	Limit  int
	Cursor *string
	After  *string
}

// OffsetStrategy is plain page/limit pagination. The aggregated snapshot is
// small enough that slicing it by offset stays cheap, so no cursor scheme
// is implemented.
type OffsetStrategy struct{}

func (OffsetStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Offset: CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
	}
}

func (OffsetStrategy) BuildMetadata(params Params, total int64, _ bool) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
}

// CalculateOffset converts a 1-based page number to a slice/SQL offset.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages is ceil(total/limit), with a floor of one page so an
// empty listing still renders as page 1 of 1.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
