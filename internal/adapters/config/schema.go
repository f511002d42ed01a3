package config

import "time"

// File represents the structure of the mpy.yaml configuration file.
// Zero values mean "not set" and leave the defaults in place.
type File struct {
	Source      string     `yaml:"source"`
	Artifacts   string     `yaml:"artifacts"`
	Entry       string     `yaml:"entry"`
	OptLevel    string     `yaml:"opt_level"`
	Target      string     `yaml:"target"`
	Exclude     []string   `yaml:"exclude"`
	Verbatim    []string   `yaml:"verbatim"`
	Parallelism int        `yaml:"parallelism"`
	Tools       ToolsDTO   `yaml:"tools"`
	Deploy      DeployDTO  `yaml:"deploy"`
	Launch      LaunchDTO  `yaml:"launch"`
	Archive     ArchiveDTO `yaml:"archive"`
}

// ToolsDTO names the external executables.
type ToolsDTO struct {
	Compiler string `yaml:"compiler"`
	Remote   string `yaml:"remote"`
}

// DeployDTO configures the deployment stage.
type DeployDTO struct {
	Policy string `yaml:"policy"`
	All    bool   `yaml:"all"`
}

// LaunchDTO configures the launch trigger.
type LaunchDTO struct {
	Enabled  *bool         `yaml:"enabled"`
	Settle   time.Duration `yaml:"settle"`
	Poll     time.Duration `yaml:"poll"`
	Attempts int           `yaml:"attempts"`
}

// ArchiveDTO configures artifact archives.
type ArchiveDTO struct {
	Dir  string `yaml:"dir"`
	Name string `yaml:"name"`
	S3   S3DTO  `yaml:"s3"`
}

// S3DTO locates the bucket receiving uploaded archives.
type S3DTO struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    *bool  `yaml:"use_ssl"`
}
