package gcloud

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudbilling/v1"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/iam/v1"
	"google.golang.org/api/iap/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/serviceusage/v1"
)

// Project is a provisioned (or adopted) Google Cloud project.
type Project struct {
	ID             string
	Number         int64
	LifecycleState string
}

// Ancestor is one entry in a project's resource hierarchy chain.
type Ancestor struct {
	Type string // "organization", "folder", or "project"
	ID   string
}

// ServiceAccount is a service principal within a project.
type ServiceAccount struct {
	Email       string
	UniqueID    string
	DisplayName string
}

// ProjectManager manages project lifecycle and hierarchy lookups.
type ProjectManager interface {
	CreateProject(ctx context.Context, projectID, displayName, organizationID string) error
	GetProject(ctx context.Context, projectID string) (*Project, error)
	GetAncestry(ctx context.Context, projectID string) ([]Ancestor, error)
}

// ServiceManager enables provider services (APIs) on a project.
type ServiceManager interface {
	EnableService(ctx context.Context, projectID, service string) error
	ServiceEnabled(ctx context.Context, projectID, service string) (bool, error)
}

// AccountManager manages service accounts and their key material.
type AccountManager interface {
	CreateServiceAccount(ctx context.Context, projectID, accountID, displayName, description string) (*ServiceAccount, error)
	GetServiceAccount(ctx context.Context, email string) (*ServiceAccount, error)
	CreateServiceAccountKey(ctx context.Context, email string) ([]byte, error)
}

// PolicyManager manages IAM bindings and organization policies.
type PolicyManager interface {
	BindProjectRole(ctx context.Context, projectID, member, role string) error
	GrantOrgRole(ctx context.Context, organizationID, member, role string) error
	SetKeyCreationPolicy(ctx context.Context, organizationID string, enforced bool) error
	ClearKeyCreationPolicy(ctx context.Context, organizationID string) error
}

// BillingManager links billing accounts to projects.
type BillingManager interface {
	LinkBilling(ctx context.Context, projectID, billingAccountID string) error
}

// ConsentManager manages the OAuth consent brand.
type ConsentManager interface {
	CreateBrand(ctx context.Context, projectNumber, title, supportEmail string) error
}

// DelegationManager flips the domain-wide delegation flag on a service
// account and surfaces the resulting OAuth client id.
type DelegationManager interface {
	EnableDelegation(ctx context.Context, email string) (clientID string, err error)
}

// TokenProvider yields a fresh access credential for the active identity.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// ControlPlane combines every control-plane concern the provisioning
// orchestrator drives. The concrete implementation is Client; tests
// substitute fakes.
type ControlPlane interface {
	ProjectManager
	ServiceManager
	AccountManager
	PolicyManager
	BillingManager
	ConsentManager
	DelegationManager
	TokenProvider
}

// Client implements ControlPlane over the Google API client libraries.
type Client struct {
	crm     *cloudresourcemanager.Service
	usage   *serviceusage.Service
	iam     *iam.Service
	billing *cloudbilling.APIService
	iap     *iap.Service

	tokens oauth2.TokenSource
	http   *http.Client

	// iamEndpoint overrides the IAM REST endpoint for the raw delegation
	// call. Tests point it at a local server.
	iamEndpoint string
}

var _ ControlPlane = (*Client)(nil)

// NewClient builds a Client from Application Default Credentials. The
// operator must have run `gcloud auth application-default login` (or
// equivalent) beforehand.
func NewClient(ctx context.Context) (*Client, error) {
	creds, err := google.FindDefaultCredentials(ctx, cloudresourcemanager.CloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("loading default credentials (run `gcloud auth application-default login`): %w", err)
	}

	opts := []option.ClientOption{option.WithTokenSource(creds.TokenSource)}

	crm, err := cloudresourcemanager.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("resource manager client: %w", err)
	}
	usage, err := serviceusage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("service usage client: %w", err)
	}
	iamSvc, err := iam.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("iam client: %w", err)
	}
	billing, err := cloudbilling.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("billing client: %w", err)
	}
	iapSvc, err := iap.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("iap client: %w", err)
	}

	return &Client{
		crm:         crm,
		usage:       usage,
		iam:         iamSvc,
		billing:     billing,
		iap:         iapSvc,
		tokens:      creds.TokenSource,
		http:        oauth2.NewClient(ctx, creds.TokenSource),
		iamEndpoint: iamRESTEndpoint,
	}, nil
}

// AccessToken returns a fresh bearer token for the active identity.
func (c *Client) AccessToken(_ context.Context) (string, error) {
	tok, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("fetching access token: %w", err)
	}
	if !tok.Valid() || tok.AccessToken == "" {
		return "", fmt.Errorf("credential source returned an empty or expired token")
	}
	return tok.AccessToken, nil
}
