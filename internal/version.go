package internal

// Version is the current version of classchat
// This should be updated with each release
const Version = "0.1.0"
