// Package fetcher retrieves bookstore records from the public directory API
// and adapts them into domain entities. The directory is a best-effort data
// source: every failure mode collapses to an empty result so the rest of the
// application keeps serving user-submitted entries.
package fetcher

// Record is one raw bookstore record as returned by the public directory.
// Field names follow the upstream payload. Coordinates and business hours are
// strings because the upstream encodes everything as strings, including the
// fraction-of-day business hours.
type Record struct {
	ID          string `json:"ESNTL_ID"`
	Name        string `json:"FCLTY_NM"`
	RoadAddress string `json:"FCLTY_ROAD_NM_ADDR"`
	Latitude    string `json:"FCLTY_LA"`
	Longitude   string `json:"FCLTY_LO"`
	TopCategory string `json:"LCLAS_NM"`
	SubCategory string `json:"MLSFC_NM"`
	Phone       string `json:"TEL_NO"`
	OpenTime    string `json:"WORKDAY_OPN_BSNS_TIME"`
	CloseTime   string `json:"WORKDAY_CLOS_TIME"`
	ClosedDays  string `json:"RSTDE_GUID_CN"`
	Option      string `json:"OPTN_DC"`
	Extra       string `json:"ADIT_DC"`
}

// envelope mirrors the directory's response wrapper. The result code lives in
// a header object and the records are nested two levels under body.
type envelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items struct {
				Item []Record `json:"item"`
			} `json:"items"`
			NumOfRows  string `json:"numOfRows"`
			PageNo     string `json:"pageNo"`
			TotalCount string `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// resultCodeOK is the directory's success code. Anything else is treated as a
// recoverable upstream failure.
const resultCodeOK = "0000"
