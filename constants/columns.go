package constants

// Columns is the fixed output schema for the cadastral report, in write order.
// Header names stay in Romanian so the report matches what registry offices
// already work with.
var Columns = []string{
	// Validation
	"Status_Validare",
	"Mesaj_Eroare",

	// File info
	"Nume_Fisier",

	// Part A - property identification
	"Numar_CF",
	"UAT",
	"Localitate",
	"Numar_Cadastral",
	"Numar_Topografic",
	"Adresa_Imobil",
	"Suprafata_Masurata_MP",
	"Suprafata_Din_Act_MP",
	"Observatii_Teren",

	// Part A - constructions
	"Nr_Constructie",
	"Destinatie_Constructie",
	"Suprafata_Construita_MP",
	"Suprafata_Desfasurata_MP",
	"An_Constructie",
	"Nr_Niveluri",
	"Observatii_Constructie",
	"Material_Constructie",

	// Part B - owners
	"Proprietari",
	"Cota_Proprietate",
	"Mod_Dobandire",
	"Act_Proprietate",
	"Istoric_Proprietari",

	// Part C - encumbrances
	"Sarcini",

	// Metadata
	"Data_Emitere_Extras",
	"Numar_Cerere",
}
