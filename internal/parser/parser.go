// Package parser reconstructs structured property records from the
// unstructured text of Romanian land-registry ("Carte Funciara") extracts.
//
// Source documents have no stable schema: field positions, wording and
// section boundaries vary across document eras and issuing offices. Every
// field is therefore extracted through an ordered chain of heuristics that
// degrades to a sentinel value instead of failing.
package parser

import "fmt"

// Parse extracts all records from one document's raw text. It never fails:
// absent data degrades to sentinel or empty fields. A document listing N
// constructions yields N records sharing parcel/owner/admin fields; a
// document with none yields exactly one bare-parcel record.
func Parse(filename, raw string) []Record {
	text := Clean(raw)

	cfNum := extractCFNumber(text)
	cadNum := extractCadastralNumber(text)
	uat, locality := extractUATLocality(text)
	owner := extractOwnerDetails(text)
	measured, docSurface, terrainObs := extractParcelData(text)
	sarcini := extractSarcini(text)
	buildings := extractConstructions(text)

	base := Record{
		SourceFile:      filename,
		CFNumber:        cfNum,
		UAT:             uat,
		Locality:        locality,
		CadastralNumber: cadNum,
		Address:         fmt.Sprintf("%s, %s", locality, uat),
		MeasuredSurface: measured,
		DocumentSurface: docSurface,
		TerrainNotes:    terrainObs,
		Owners:          owner.Owners,
		Share:           owner.Share,
		AcquisitionMode: owner.AcquisitionMode,
		ActReference:    owner.ActReference,
		OwnerHistory:    owner.History,
		Encumbrances:    sarcini,
		IssueDate:       extractIssueDate(text),
		RequestNumber:   extractRequestNumber(text),
	}

	if len(buildings) == 0 {
		return []Record{base}
	}

	records := make([]Record, 0, len(buildings))
	for _, b := range buildings {
		rec := base
		rec.CadastralNumber = fmt.Sprintf("%s-%s", cadNum, b.ID)
		rec.ConstructionID = b.ID
		rec.Destination = b.Destination
		rec.BuiltSurface = b.BuiltSurface
		rec.DevelopedSurface = b.DevelopedSurface
		rec.ConstructionYear = b.Year
		rec.FloorCount = b.FloorCount
		rec.FloorNotes = b.FloorNotes
		rec.Material = b.Material
		records = append(records, rec)
	}
	return records
}
