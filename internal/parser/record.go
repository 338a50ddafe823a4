package parser

// Record is one output row: a bare parcel, or one construction unit on a
// parcel. All fields are strings; "" means the source layout never carried
// the field, constants.NotDetected means it was searched for and missing.
type Record struct {
	SourceFile string

	// Part A - identification
	CFNumber        string
	UAT             string
	Locality        string
	CadastralNumber string
	TopoNumber      string
	Address         string
	MeasuredSurface string
	DocumentSurface string
	TerrainNotes    string

	// Part A - construction (empty for bare parcels)
	ConstructionID   string
	Destination      string
	BuiltSurface     string
	DevelopedSurface string
	ConstructionYear string
	FloorCount       string
	FloorNotes       string
	Material         string

	// Part B - ownership
	Owners          string
	Share           string
	AcquisitionMode string
	ActReference    string
	OwnerHistory    string

	// Part C
	Encumbrances string

	// Metadata
	IssueDate     string
	RequestNumber string

	// Validation (filled by the validator, not the parser)
	ValidationStatus  string
	ValidationMessage string
}

// Row renders the record in the fixed column order of constants.Columns.
func (r *Record) Row() []string {
	return []string{
		r.ValidationStatus,
		r.ValidationMessage,
		r.SourceFile,
		r.CFNumber,
		r.UAT,
		r.Locality,
		r.CadastralNumber,
		r.TopoNumber,
		r.Address,
		r.MeasuredSurface,
		r.DocumentSurface,
		r.TerrainNotes,
		r.ConstructionID,
		r.Destination,
		r.BuiltSurface,
		r.DevelopedSurface,
		r.ConstructionYear,
		r.FloorCount,
		r.FloorNotes,
		r.Material,
		r.Owners,
		r.Share,
		r.AcquisitionMode,
		r.ActReference,
		r.OwnerHistory,
		r.Encumbrances,
		r.IssueDate,
		r.RequestNumber,
	}
}

// FromRow rebuilds a record from a spreadsheet row in Columns order.
// Short rows (trailing empty cells trimmed by the reader) are tolerated.
func FromRow(cells []string) Record {
	get := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	return Record{
		ValidationStatus:  get(0),
		ValidationMessage: get(1),
		SourceFile:        get(2),
		CFNumber:          get(3),
		UAT:               get(4),
		Locality:          get(5),
		CadastralNumber:   get(6),
		TopoNumber:        get(7),
		Address:           get(8),
		MeasuredSurface:   get(9),
		DocumentSurface:   get(10),
		TerrainNotes:      get(11),
		ConstructionID:    get(12),
		Destination:       get(13),
		BuiltSurface:      get(14),
		DevelopedSurface:  get(15),
		ConstructionYear:  get(16),
		FloorCount:        get(17),
		FloorNotes:        get(18),
		Material:          get(19),
		Owners:            get(20),
		Share:             get(21),
		AcquisitionMode:   get(22),
		ActReference:      get(23),
		OwnerHistory:      get(24),
		Encumbrances:      get(25),
		IssueDate:         get(26),
		RequestNumber:     get(27),
	}
}
