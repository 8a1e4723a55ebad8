package racetrack

import (
	"net/url"
	"sort"

	"github.com/racetrack/racetrack-client/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// TestSetParams describes a test set to be created by BeginTestSet.
//
// It can be built either with NewTestSetParams, from discrete values, or with
// TestSetParamsFromConfig, from a name/value mapping. Optional fields that are undefined are not
// sent to the server. An empty TestType or Language means the default (Regression, English).
type TestSetParams struct {
	BuildID     string
	User        string
	Product     string
	Description string
	HostOS      string

	ServerBuildID ldvalue.OptionalString
	Branch        ldvalue.OptionalString
	BuildType     ldvalue.OptionalString
	TestType      TestType
	Language      Language
}

// NewTestSetParams returns parameters with all of the required fields set. The optional
// ServerBuildID, Branch and BuildType fields are sent as empty strings unless changed.
func NewTestSetParams(buildID, user, product, description, hostOS string) TestSetParams {
	return TestSetParams{
		BuildID:       buildID,
		User:          user,
		Product:       product,
		Description:   description,
		HostOS:        hostOS,
		ServerBuildID: ldvalue.NewOptionalString(""),
		Branch:        ldvalue.NewOptionalString(""),
		BuildType:     ldvalue.NewOptionalString(""),
		TestType:      TestTypeRegression,
		Language:      LanguageEnglish,
	}
}

// TestSetParamsFromConfig builds parameters from a mapping of RaceTrack field names, such as
// {"BuildID": "11101", "User": "me", ...}. Only the optional fields present in config are sent.
// Keys that are not test set fields are returned in unknown, sorted, and otherwise ignored: they
// are never sent to the server. TestType and Language are always sent, defaulting to Regression
// and English if config does not contain them.
func TestSetParamsFromConfig(config map[string]string) (p TestSetParams, unknown []string) {
	for k, v := range config {
		switch k {
		case servicedef.FieldBuildID:
			p.BuildID = v
		case servicedef.FieldUser:
			p.User = v
		case servicedef.FieldProduct:
			p.Product = v
		case servicedef.FieldDescription:
			p.Description = v
		case servicedef.FieldHostOS:
			p.HostOS = v
		case servicedef.FieldServerBuildID:
			p.ServerBuildID = ldvalue.NewOptionalString(v)
		case servicedef.FieldBranch:
			p.Branch = ldvalue.NewOptionalString(v)
		case servicedef.FieldBuildType:
			p.BuildType = ldvalue.NewOptionalString(v)
		case servicedef.FieldTestType:
			p.TestType = TestType(v)
		case servicedef.FieldLanguage:
			p.Language = Language(v)
		default:
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return p, unknown
}

func (p TestSetParams) testType() TestType {
	if p.TestType == "" {
		return TestTypeRegression
	}
	return p.TestType
}

func (p TestSetParams) language() Language {
	if p.Language == "" {
		return LanguageEnglish
	}
	return p.Language
}

func (p TestSetParams) missingFields() []string {
	return missing(map[string]string{
		servicedef.FieldBuildID:     p.BuildID,
		servicedef.FieldUser:        p.User,
		servicedef.FieldProduct:     p.Product,
		servicedef.FieldDescription: p.Description,
		servicedef.FieldHostOS:      p.HostOS,
	}, servicedef.TestSetRequiredFields)
}

func (p TestSetParams) form() url.Values {
	f := url.Values{}
	setIfNotEmpty(f, servicedef.FieldBuildID, p.BuildID)
	setIfNotEmpty(f, servicedef.FieldUser, p.User)
	setIfNotEmpty(f, servicedef.FieldProduct, p.Product)
	setIfNotEmpty(f, servicedef.FieldDescription, p.Description)
	setIfNotEmpty(f, servicedef.FieldHostOS, p.HostOS)
	setOptional(f, servicedef.FieldServerBuildID, p.ServerBuildID)
	setOptional(f, servicedef.FieldBranch, p.Branch)
	setOptional(f, servicedef.FieldBuildType, p.BuildType)
	f.Set(servicedef.FieldTestType, string(p.testType()))
	f.Set(servicedef.FieldLanguage, string(p.language()))
	return f
}

// TestCaseParams describes a test case to be created by BeginTestCase. The ResultSetID field is
// always taken from the session's active test set.
//
// It can be built either with NewTestCaseParams or with TestCaseParamsFromConfig. Optional
// fields that are undefined are not sent to the server.
type TestCaseParams struct {
	Name    string
	Feature string

	Description   ldvalue.OptionalString
	MachineName   ldvalue.OptionalString
	TCMSID        ldvalue.OptionalString // comma-separated Testlink IDs
	InputLanguage ldvalue.OptionalString // abbreviation such as "EN"
	Type          ldvalue.OptionalString
	TestPriority  ldvalue.OptionalString
	Method        ldvalue.OptionalString
	Remark        ldvalue.OptionalString
	Validation    ldvalue.OptionalString
}

// NewTestCaseParams returns parameters for a test case with the given name and feature.
// Description, MachineName, TCMSID and InputLanguage are sent as empty strings unless changed;
// the other optional fields are only sent if they are set.
func NewTestCaseParams(name, feature string) TestCaseParams {
	return TestCaseParams{
		Name:          name,
		Feature:       feature,
		Description:   ldvalue.NewOptionalString(""),
		MachineName:   ldvalue.NewOptionalString(""),
		TCMSID:        ldvalue.NewOptionalString(""),
		InputLanguage: ldvalue.NewOptionalString(""),
	}
}

// WithDescription returns a copy of the parameters with the Description field set.
func (p TestCaseParams) WithDescription(description string) TestCaseParams {
	p.Description = ldvalue.NewOptionalString(description)
	return p
}

// TestCaseParamsFromConfig builds parameters from a mapping of RaceTrack field names. Every
// optional field is sent, with an empty string for any that config does not contain. Keys that
// are not test case fields are returned in unknown, sorted, and otherwise ignored.
func TestCaseParamsFromConfig(config map[string]string) (p TestCaseParams, unknown []string) {
	p = TestCaseParams{
		Name:    config[servicedef.FieldName],
		Feature: config[servicedef.FieldFeature],
	}
	for _, o := range p.optionalFields() {
		*o.value = ldvalue.NewOptionalString(config[o.name])
	}
	known := map[string]bool{servicedef.FieldName: true, servicedef.FieldFeature: true}
	for _, o := range p.optionalFields() {
		known[o.name] = true
	}
	for k := range config {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return p, unknown
}

type optionalField struct {
	name  string
	value *ldvalue.OptionalString
}

func (p *TestCaseParams) optionalFields() []optionalField {
	return []optionalField{
		{servicedef.FieldDescription, &p.Description},
		{servicedef.FieldMachineName, &p.MachineName},
		{servicedef.FieldTCMSID, &p.TCMSID},
		{servicedef.FieldInputLanguage, &p.InputLanguage},
		{servicedef.FieldType, &p.Type},
		{servicedef.FieldTestPriority, &p.TestPriority},
		{servicedef.FieldMethod, &p.Method},
		{servicedef.FieldRemark, &p.Remark},
		{servicedef.FieldValidation, &p.Validation},
	}
}

func (p TestCaseParams) missingFields() []string {
	return missing(map[string]string{
		servicedef.FieldName:    p.Name,
		servicedef.FieldFeature: p.Feature,
	}, servicedef.TestCaseRequiredFields)
}

func (p TestCaseParams) form(resultSetID int) url.Values {
	f := url.Values{}
	setIfNotEmpty(f, servicedef.FieldName, p.Name)
	setIfNotEmpty(f, servicedef.FieldFeature, p.Feature)
	for _, o := range p.optionalFields() {
		setOptional(f, o.name, *o.value)
	}
	f.Set(servicedef.FieldResultSetID, itoa(resultSetID))
	return f
}

func missing(values map[string]string, required []string) []string {
	var ret []string
	for _, name := range required {
		if values[name] == "" {
			ret = append(ret, name)
		}
	}
	return ret
}

func setIfNotEmpty(f url.Values, name, value string) {
	if value != "" {
		f.Set(name, value)
	}
}

func setOptional(f url.Values, name string, value ldvalue.OptionalString) {
	if value.IsDefined() {
		f.Set(name, value.StringValue())
	}
}
