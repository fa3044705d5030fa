package dto

// Recognized W-2 extraction keys. The extraction prompt instructs the model to
// emit exactly these; none is guaranteed to be present in a reply.
const (
	FieldEmployeeName    = "Employee Name"
	FieldEmployerName    = "Employer Name"
	FieldWages           = "Wages (Box 1)"
	FieldFederalWithheld = "Federal Income Tax Withheld (Box 2)"
	FieldSocialSecurity  = "Social Security Wages (Box 3)"
	FieldFilingYear      = "Filing Year"
)

// RequiredFields must carry usable values for a meaningful calculation.
// Their absence is a warning, not a failure; zeros are substituted.
var RequiredFields = []string{FieldWages, FieldFederalWithheld}

// ExtractedFields is the loosely-typed mapping decoded from the model's JSON
// reply. Values are typically strings, often with currency formatting.
type ExtractedFields map[string]interface{}

// Get returns the raw value for a key, or nil when absent.
func (f ExtractedFields) Get(key string) interface{} {
	if f == nil {
		return nil
	}
	return f[key]
}
