package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# Convene Server configurations

# The name of the server.
# This is the name used in notification mail.
name: "{{ .Name }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# The HTTP server configuration.
http:
  # The address on which the HTTP server will listen.
  listen_addr: "{{ .HTTP.ListenAddr }}"

  # The path to the TLS private key.
  tls_key_path: "{{ .HTTP.TLSKeyPath }}"

  # The path to the TLS certificate.
  tls_cert_path: "{{ .HTTP.TLSCertPath }}"

  # The public URL of the HTTP server.
  # This is the address used in invitation links.
  # Make sure to use https:// if you are using TLS.
  public_url: "{{ .HTTP.PublicURL }}"

# The stats server configuration.
stats:
  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"

# The database configuration.
db:
  # The database driver to use.
  # Valid values are "sqlite" and "postgres".
  driver: "{{ .DB.Driver }}"
  # The database data source name.
  # This is driver specific and can be a file path or connection string.
  data_source: "{{ .DB.DataSource }}"

# The mail delivery configuration.
# Leave the host empty to log deliveries instead of sending them.
smtp:
  host: "{{ .SMTP.Host }}"
  port: {{ .SMTP.Port }}
  username: "{{ .SMTP.Username }}"
  password: "{{ .SMTP.Password }}"
  # The sender address used on outgoing mail.
  from: "{{ .SMTP.From }}"
  # Force an implicit TLS connection.
  tls: {{ .SMTP.TLS }}

# The authentication configuration.
auth:
  # The path to the server's session signing key.
  key_path: "{{ .Auth.KeyPath }}"

# Cron jobs configuration.
jobs:
  # The cron spec for the reminder sweep job.
  reminder_sweep: "{{ .Jobs.ReminderSweep }}"
  # The number of seconds a sent meeting can wait before pending
  # participants are reminded.
  reminder_age: {{ .Jobs.ReminderAge }}

# Organizer accounts created on first run.
#initial_admin_emails:
#  - "admin@example.com"
`))

func newConfigFile(cfg *Config) string {
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
