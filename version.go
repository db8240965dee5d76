package waypoint

// Version is the release of the library and its commands.
const Version = "0.1.0"
