package mapping

// Domain is a CLIF concept domain: one mapping table and one canonical
// output table exist per domain.
type Domain string

const (
	Vitals             Domain = "vitals"
	Labs               Domain = "labs"
	Medications        Domain = "medications"
	RespiratorySupport Domain = "respiratory_support"
)

// Domains lists every concept domain in load order.
func Domains() []Domain {
	return []Domain{Vitals, Labs, Medications, RespiratorySupport}
}

// CategoryColumn returns the category column name used by this domain's
// mapping artifact (the mCIDE files prefix it per domain).
func (d Domain) CategoryColumn() string {
	switch d {
	case Vitals:
		return "vital_category"
	case Labs:
		return "lab_category"
	case Medications:
		return "med_category"
	case RespiratorySupport:
		return "device_category"
	}
	return "category"
}

// Entry is one row of a mapping table: a canonical category plus, per
// source dataset, the raw `;`-delimited list of native identifiers that
// denote the same concept. Identifier lists may be empty; the delimiter
// cannot be escaped, so an identifier containing `;` is not representable.
type Entry struct {
	Category  string
	SourceIDs map[string]string
}

// IDs returns the raw identifier list for one source dataset ("" when the
// dataset has no identifiers for this entry).
func (e Entry) IDs(dataset string) string {
	return e.SourceIDs[dataset]
}
