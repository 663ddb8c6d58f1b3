package types

// Version is the diary release reported by the version command.
const Version = "0.3.0"
