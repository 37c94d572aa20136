package config

// ProjectIDPrefix prefixes derived project ids.
const ProjectIDPrefix = "gwmigrate-"

// ProjectDisplayName is the human-readable name for created projects.
const ProjectDisplayName = "Workspace Migration"

// Service account identity used for the migration.
const (
	ServiceAccountID          = "gwsetup-svc"
	ServiceAccountDisplayName = "Workspace migration service account"
	ServiceAccountDescription = "Impersonates domain users during the Workspace migration. Created by gwsetup."
)

// Roles bound during provisioning and recovery.
const (
	ProjectEditorRole  = "roles/editor"
	OrgPolicyAdminRole = "roles/orgpolicy.policyAdmin"
)

// File name suffixes; final names are <sanitized-domain> + suffix.
const (
	KeyFileSuffix       = "-gwsetup-key.json"
	ReferenceFileSuffix = "-gwsetup-reference.txt"
	RunLogName          = "gwsetup.log"
)

// MigrationServices is the ordered, fixed list of services the migration
// needs enabled on the project. Enabled one at a time, in this order, so
// partial-failure accounting stays deterministic.
var MigrationServices = []string{
	"admin.googleapis.com",
	"drive.googleapis.com",
	"gmail.googleapis.com",
	"calendar-json.googleapis.com",
	"contacts.googleapis.com",
	"people.googleapis.com",
	"tasks.googleapis.com",
	"sheets.googleapis.com",
	"chat.googleapis.com",
	"groupsmigration.googleapis.com",
	"cloudidentity.googleapis.com",
	"iam.googleapis.com",
	"iap.googleapis.com",
}

// DelegationScopes is the OAuth scope set a Workspace admin grants to the
// service account's client id in the admin console. Joined with commas in
// the reference file, matching the admin-console input format.
var DelegationScopes = []string{
	"https://www.googleapis.com/auth/admin.directory.user.readonly",
	"https://www.googleapis.com/auth/admin.directory.group",
	"https://www.googleapis.com/auth/admin.directory.resource.calendar",
	"https://www.googleapis.com/auth/drive",
	"https://mail.google.com/",
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/contacts",
	"https://www.googleapis.com/auth/tasks",
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/chat.import",
	"https://www.googleapis.com/auth/apps.groups.migration",
	"https://www.googleapis.com/auth/cloud-identity.groups.readonly",
	"https://sites.google.com/feeds",
}

// AdminConsoleDelegationURL is where a Workspace admin authorizes the
// client id for the scopes above.
const AdminConsoleDelegationURL = "https://admin.google.com/ac/owl/domainwidedelegation"
