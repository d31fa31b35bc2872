package repository

import (
	"context"
	"database/sql/driver"
	"fmt"
	"net"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"
	"github.com/lib/pq"
)

// IAMConfig describes a Postgres endpoint that authenticates with RDS IAM tokens.
type IAMConfig struct {
	Host    string
	Port    string
	User    string
	Name    string
	SSLMode string
	Region  string
}

type tokenBuilder func(ctx context.Context, endpoint, region, dbUser string, creds aws.CredentialsProvider, optFns ...func(*auth.BuildAuthTokenOptions)) (string, error)

// IAMConnector dials Postgres with a freshly signed auth token for every new
// connection. Tokens expire after 15 minutes, so they cannot live in a static DSN.
type IAMConnector struct {
	cfg        IAMConfig
	creds      aws.CredentialsProvider
	buildToken tokenBuilder
}

func NewIAMConnector(ctx context.Context, cfg IAMConfig) (*IAMConnector, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &IAMConnector{
		cfg:        cfg,
		creds:      awsCfg.Credentials,
		buildToken: auth.BuildAuthToken,
	}, nil
}

func (c *IAMConnector) Connect(ctx context.Context) (driver.Conn, error) {
	dsn, err := c.dsn(ctx)
	if err != nil {
		return nil, err
	}
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to build postgres connector: %w", err)
	}
	return connector.Connect(ctx)
}

func (c *IAMConnector) Driver() driver.Driver {
	return &pq.Driver{}
}

func (c *IAMConnector) dsn(ctx context.Context) (string, error) {
	endpoint := net.JoinHostPort(c.cfg.Host, c.cfg.Port)
	token, err := c.buildToken(ctx, endpoint, c.cfg.Region, c.cfg.User, c.creds)
	if err != nil {
		return "", fmt.Errorf("failed to build RDS auth token: %w", err)
	}

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.cfg.User, token),
		Host:     endpoint,
		Path:     c.cfg.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(c.cfg.SSLMode)),
	}
	return u.String(), nil
}

var _ driver.Connector = (*IAMConnector)(nil)
