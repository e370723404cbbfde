package source

import (
	"slices"

	"github.com/poiesic/labsearch/core"
)

// FallbackName labels records that came from the built-in list.
const FallbackName = "builtin"

var defaultRecords = []core.RawRecord{
	{Code: "NFS", Name: "Numération formule sanguine", Sector: "HEMA", Delay: "24h", Description: "Hémogramme complet avec plaquettes", Price: "80"},
	{Code: "HB", Name: "Hémoglobine", Sector: "HEMA", Delay: "24h", Description: "Dosage de l'hémoglobine", Price: "40"},
	{Code: "HBA1C", Name: "Hémoglobine glyquée", Sector: "BIOC", Delay: "24h", Description: "Équilibre glycémique sur trois mois", Price: "150"},
	{Code: "GLY", Name: "Glycémie à jeun", Sector: "BIOC", Delay: "24h", Description: "Glucose plasmatique", Price: "25"},
	{Code: "CHOL", Name: "Cholestérol total", Sector: "BIOC", Delay: "24h", Description: "Bilan lipidique", Price: "40"},
	{Code: "TSH", Name: "TSH ultrasensible", Sector: "HORM", Delay: "48h", Description: "Exploration thyroïdienne", Price: "120"},
	{Code: "PRL", Name: "Prolactine", Sector: "HORM", Delay: "48h", Description: "Hormone hypophysaire", Price: "150"},
	{Code: "CORT", Name: "Cortisol", Sector: "HORM", Delay: "48h", Description: "Cortisol plasmatique de 8h", Price: "160"},
	{Code: "HBS", Name: "Hépatite B antigène HBs", Sector: "SERO", Delay: "48h", Description: "Dépistage de l'hépatite B", Price: "120"},
	{Code: "HCV", Name: "Sérologie hépatite C", Sector: "SERO", Delay: "48h", Description: "Anticorps anti-VHC", Price: "200"},
	{Code: "HIV", Name: "Sérologie HIV", Sector: "SERO", Delay: "48h", Description: "Dépistage VIH 1 et 2", Price: "150"},
	{Code: "TOXO", Name: "Toxoplasmose IgG IgM", Sector: "SERO", Delay: "72h", Description: "Sérologie toxoplasmique", Price: "180"},
	{Code: "PSA", Name: "PSA total", Sector: "IMMU", Delay: "48h", Description: "Antigène prostatique spécifique", Price: "200"},
	{Code: "CA125", Name: "CA 125", Sector: "IMMU", Delay: "72h", Description: "Marqueur ovarien", Price: "250"},
	{Code: "TROP", Name: "Troponine Ic", Sector: "BIOC", Delay: "2h", Description: "Marqueur de nécrose myocardique", Price: "250"},
	{Code: "CREA", Name: "Créatinine", Sector: "BIOC", Delay: "24h", Description: "Fonction rénale", Price: "30"},
	{Code: "UREE", Name: "Urée", Sector: "BIOC", Delay: "24h", Description: "Fonction rénale", Price: "30"},
	{Code: "ALAT", Name: "Transaminases ALAT", Sector: "BIOC", Delay: "24h", Description: "Bilan hépatique", Price: "40"},
	{Code: "VITD", Name: "Vitamine D", Sector: "BIOC", Delay: "72h", Description: "25-OH vitamine D", Price: "350"},
	{Code: "B12", Name: "Vitamine B12", Sector: "BIOC", Delay: "72h", Description: "Cobalamine sérique", Price: "200"},
	{Code: "FER", Name: "Fer sérique", Sector: "BIOC", Delay: "24h", Description: "Bilan martial", Price: "50"},
	{Code: "FERR", Name: "Ferritine", Sector: "BIOC", Delay: "48h", Description: "Réserves en fer", Price: "150"},
	{Code: "ECBU", Name: "ECBU", Sector: "BACT", Delay: "72h", Description: "Examen cytobactériologique des urines", Price: "100"},
	{Code: "HP", Name: "Helicobacter pylori", Sector: "BACT", Delay: "48h", Description: "Recherche d'antigènes dans les selles", Price: "250"},
	{Code: "FAN", Name: "Anticorps antinucléaires", Sector: "IMMU", Delay: "72h", Description: "Dépistage auto-immun", Price: "250"},
	{Code: "IONO", Name: "Ionogramme sanguin", Sector: "BIOC", Delay: "24h", Description: "Sodium, potassium, chlore", Price: "90"},
	{Code: "CRP", Name: "Protéine C réactive", Sector: "BIOC", Delay: "24h", Description: "Marqueur de l'inflammation", Price: "60"},
}

// DefaultRecords returns the built-in analysis list used when no source is available.
// Each call returns a fresh copy.
func DefaultRecords() []core.RawRecord {
	return slices.Clone(defaultRecords)
}
