package app_info

// NAME app name
var NAME = "release"

// VERSION app version - set via build flags
var VERSION = "unknown"
