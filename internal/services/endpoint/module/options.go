package module

import (
	"sort"
	"strings"
	"time"

	"sftpcycle/internal/platform/config"
	perr "sftpcycle/internal/platform/errors"
)

// Options controls the endpoint lifecycle workflows
type Options struct {
	ServerName     string
	LoggingRoleARN string
	UserRoleARN    string
	Bucket         string
	RawUserConfigs string

	DomainName   string
	Subdomain    string
	HostedZoneID string
	Region       string
	ScheduleTag  string

	OnlineInterval   time.Duration
	OnlineWait       time.Duration
	StopInterval     time.Duration
	StopWait         time.Duration
	HostnameAttempts int
	HostnamePause    time.Duration
	DNSSyncInterval  time.Duration
	DNSSyncWait      time.Duration
	VerifyPause      time.Duration
}

// FromConfig reads with SFTP_ prefix. Presence of the required keys is
// checked per handler (bring-up and tear-down need different subsets) so a
// missing value surfaces as an input error, not a cold-start crash
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("SFTP_")
	return Options{
		ServerName:     c.MayString("SERVER_NAME", ""),
		LoggingRoleARN: c.MayString("LOGGING_ROLE_ARN", ""),
		UserRoleARN:    c.MayString("USER_ROLE_ARN", ""),
		Bucket:         c.MayString("S3_BUCKET", ""),
		RawUserConfigs: c.MayString("USER_CONFIGS", ""),

		DomainName:   c.MayString("DOMAIN_NAME", ""),
		Subdomain:    c.MayString("SUBDOMAIN", "server"),
		HostedZoneID: c.MayString("HOSTED_ZONE_ID", ""),
		Region:       c.MayString("REGION", ""),
		ScheduleTag:  c.MayString("SCHEDULE_TAG", ""),

		OnlineInterval:   c.MayDuration("ONLINE_INTERVAL", 10*time.Second),
		OnlineWait:       c.MayDuration("ONLINE_WAIT", 5*time.Minute),
		StopInterval:     c.MayDuration("STOP_INTERVAL", 10*time.Second),
		StopWait:         c.MayDuration("STOP_WAIT", 5*time.Minute),
		HostnameAttempts: c.MayInt("HOSTNAME_ATTEMPTS", 5),
		HostnamePause:    c.MayDuration("HOSTNAME_PAUSE", 30*time.Second),
		DNSSyncInterval:  c.MayDuration("DNS_SYNC_INTERVAL", 5*time.Second),
		DNSSyncWait:      c.MayDuration("DNS_SYNC_WAIT", time.Minute),
		VerifyPause:      c.MayDuration("VERIFY_PAUSE", 5*time.Second),
	}
}

// requireSet builds one validation error naming every missing key
func requireSet(pairs map[string]string) error {
	var missing []string
	for key, val := range pairs {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, "SFTP_"+key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return perr.Validationf("missing required configuration: %s", strings.Join(missing, ", "))
}

// ValidateUp checks the configuration the bring-up handler needs
func (o Options) ValidateUp() error {
	return requireSet(map[string]string{
		"SERVER_NAME":      o.ServerName,
		"LOGGING_ROLE_ARN": o.LoggingRoleARN,
		"USER_ROLE_ARN":    o.UserRoleARN,
		"S3_BUCKET":        o.Bucket,
		"USER_CONFIGS":     o.RawUserConfigs,
	})
}

// ValidateDown checks the configuration the tear-down handler needs
func (o Options) ValidateDown() error {
	return requireSet(map[string]string{
		"SERVER_NAME": o.ServerName,
	})
}
