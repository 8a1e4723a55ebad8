package servicedef

// Endpoint names, relative to the RaceTrack base URL.
const (
	EndpointTestSetBegin         = "TestSetBegin.php"
	EndpointTestSetData          = "TestSetData.php"
	EndpointTestSetEnd           = "TestSetEnd.php"
	EndpointTestCaseBegin        = "TestCaseBegin.php"
	EndpointTestCaseEnd          = "TestCaseEnd.php"
	EndpointTestCaseComment      = "TestCaseComment.php"
	EndpointTestCaseWarning      = "TestCaseWarning.php"
	EndpointTestCaseScreenshot   = "TestCaseScreenshot.php"
	EndpointTestCaseLog          = "TestCaseLog.php"
	EndpointTestCaseVerification = "TestCaseVerification.php"
)

// Form field names shared by several endpoints.
const (
	FieldID          = "ID"
	FieldResultSetID = "ResultSetID"
	FieldResultID    = "ResultID"
	FieldDescription = "Description"
	FieldResult      = "Result"
	FieldName        = "Name"
	FieldValue       = "Value"
	FieldActual      = "Actual"
	FieldExpected    = "Expected"
)

// Test set fields.
const (
	FieldBuildID       = "BuildID"
	FieldUser          = "User"
	FieldProduct       = "Product"
	FieldHostOS        = "HostOS"
	FieldServerBuildID = "ServerBuildID"
	FieldBranch        = "Branch"
	FieldBuildType     = "BuildType"
	FieldTestType      = "TestType"
	FieldLanguage      = "Language"
)

// Test case fields.
const (
	FieldFeature       = "Feature"
	FieldMachineName   = "MachineName"
	FieldTCMSID        = "TCMSID"
	FieldInputLanguage = "InputLanguage"
	FieldType          = "Type"
	FieldTestPriority  = "TestPriority"
	FieldMethod        = "Method"
	FieldRemark        = "Remark"
	FieldValidation    = "Validation"
)

// Multipart field names for file attachments.
const (
	FileFieldScreenshot = "Screenshot"
	FileFieldLog        = "Log"
)

// TestSetRequiredFields lists the fields TestSetBegin.php expects on every call.
var TestSetRequiredFields = []string{FieldBuildID, FieldUser, FieldProduct, FieldDescription, FieldHostOS}

// TestCaseRequiredFields lists the fields TestCaseBegin.php expects on every call.
var TestCaseRequiredFields = []string{FieldName, FieldFeature}
