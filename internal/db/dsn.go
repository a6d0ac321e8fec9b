package db

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Credentials are the discrete connection settings used when no full DSN is configured.
type Credentials struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN builds a driver-specific connection string from discrete credentials.
func DSN(driver string, c Credentials) (string, error) {
	switch driver {
	case "mysql":
		port := c.Port
		if port == "" {
			port = "3306"
		}
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, port)
		mc.DBName = c.Name
		mc.ParseTime = true
		mc.Loc = time.UTC
		return mc.FormatDSN(), nil
	case "pgx":
		port := c.Port
		if port == "" {
			port = "5432"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     net.JoinHostPort(c.Host, port),
			Path:     "/" + c.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("cannot build dsn for driver %q, set DB_CONNECTION", driver)
	}
}
