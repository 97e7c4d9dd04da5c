// Command unipack generates Unity package manifests and exports package
// sources, legacy archives and version constants from a Unity project.
package main

func main() {
	Execute()
}
