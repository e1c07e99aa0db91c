// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package cddl

import "regexp"

// Canonicalization overrides: a closed table of definition names whose
// generic translation is replaced, either to minimize binary size or to
// guarantee canonical round-tripping. A name appears in at most one
// category; Emit enforces that order of checks is irrelevant by keeping the
// sets disjoint.

// datetimeTypes are serialized in SPDX-JSON as ISO 8601 UTC strings with
// second precision ('Z' or an explicit offset); CoSPDX stores them as
// tag 1 epoch seconds.
var datetimeTypes = stringSet(
	"prop_CreationInfo_created",
	"prop_Relationship_endTime",
	"prop_Relationship_startTime",
	"prop_security_VulnAssessmentRelationship_security_modifiedTime",
	"prop_security_VulnAssessmentRelationship_security_publishedTime",
	"prop_security_VulnAssessmentRelationship_security_withdrawnTime",
	"prop_build_Build_build_buildEndTime",
	"prop_build_Build_build_buildStartTime",
	"prop_Artifact_builtTime",
	"prop_Artifact_releaseTime",
	"prop_Artifact_validUntilTime",
	"prop_security_Vulnerability_security_modifiedTime",
	"prop_security_Vulnerability_security_publishedTime",
	"prop_security_Vulnerability_security_withdrawnTime",
	"prop_security_VexAffectedVulnAssessmentRelationship_security_actionStatementTime",
	"prop_security_VexNotAffectedVulnAssessmentRelationship_security_impactStatementTime",
)

// quantityTypes may be float or numeric string in SPDX-JSON; CoSPDX chooses
// the string representation, which avoids precision loss if the document is
// converted back to SPDX-JSON.
var quantityTypes = stringSet(
	"prop_security_CvssV2VulnAssessmentRelationship_security_score",
	"prop_security_CvssV3VulnAssessmentRelationship_security_score",
	"prop_security_CvssV4VulnAssessmentRelationship_security_score",
	"prop_security_EpssVulnAssessmentRelationship_security_percentile",
	"prop_security_EpssVulnAssessmentRelationship_security_probability",
	"prop_ai_EnergyConsumptionDescription_ai_energyQuantity",
)

// digestValueTypes are hex strings in SPDX-JSON, stored as raw bytes.
var digestValueTypes = stringSet("prop_Hash_hashValue")

// extensibleTypes get a socket production that post-3.0.1 extensions may
// widen.
var extensibleTypes = stringSet("AnyClass")

var contentTypes = stringSet(
	"prop_software_File_contentType",
	"prop_ExternalRef_contentType",
	"prop_Annotation_contentType",
)

var semverTypes = stringSet(
	"prop_simplelicensing_LicenseExpression_simplelicensing_licenseListVersion",
	"prop_CreationInfo_specVersion",
)

// Canonical regex bodies. CDDL .regexp controls are full matches without
// lookahead support, so the lookahead-bearing SPDX-JSON patterns are
// rewritten into equivalent lookahead-free forms. The IRI and semver
// rewrites were established by randomized differential testing against the
// originals; they are consumed here as literal constants, not re-derived.
const (
	// QuantityPattern is the decimal-number form quantity strings must take.
	QuantityPattern = `-?[0-9]+(\.[0-9]*)?`

	// BlankNodePattern replaces the anchored SPDX-JSON "^_:.+"; since CDDL
	// regexps are matches, the intent is taken as not matching any line
	// returns.
	BlankNodePattern = `_:.+`

	// ContentTypePattern replaces "^[^\\/]+\\/[^\\/]+$"; the double
	// escaping of '/' is not needed in CDDL.
	ContentTypePattern = `[^/]+/[^/]+`

	// IRIPattern replaces the lookahead form "^(?!_:).+:.+".
	IRIPattern = `[^_].*:.+|_[^:].*:.+`

	// SemverPattern is the lookahead-free SemVer 2.0.0 pattern.
	SemverPattern = `(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)(-((0|[1-9][0-9]*|[0-9]*[a-zA-Z-][0-9a-zA-Z-]*)(\.(0|[1-9][0-9]*|[0-9]*[a-zA-Z-][0-9a-zA-Z-]*))*))?(\+([0-9a-zA-Z-]+(\.[0-9a-zA-Z-]+)*))?`
)

// Compiled forms, which also validate the constants at init.
var (
	quantityRegexp    = regexp.MustCompile(`^(` + QuantityPattern + `)$`)
	blankNodeRegexp   = regexp.MustCompile(`^(` + BlankNodePattern + `)$`)
	contentTypeRegexp = regexp.MustCompile(`^(` + ContentTypePattern + `)$`)
	iriRegexp         = regexp.MustCompile(`^(` + IRIPattern + `)$`)
	semverRegexp      = regexp.MustCompile(`^(` + SemverPattern + `)$`)
)

func stringSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
