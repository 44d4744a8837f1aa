package playlist

// MaxPageSize is the largest page the listing endpoint serves.
const MaxPageSize = 50

// MaxBatchSize is the largest number of video IDs the detail endpoint accepts per call.
const MaxBatchSize = 50

// Page is one response of the paginated listing endpoint.
type Page struct {
	Entries        []Entry // Position is left zero; the collector assigns it
	NextPageToken  string  // empty on the last page
	TotalResults   int64
	ResultsPerPage int64
}
