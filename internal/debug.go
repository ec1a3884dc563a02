package internal

import (
	"fmt"
	"log"
	"os"
	"os/user"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
)

var sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

func ShowVersion() {
	log.Printf("Version: %s (%s, %d CPUs)", versioninfo.Short(), runtime.Version(), runtime.NumCPU())
}

// EnvironmentVars logs the POSTFX_* configuration, masking anything secret.
func EnvironmentVars() {
	log.Println("Environment variables")

	environ := os.Environ()
	sort.Strings(environ)
	for _, entry := range environ {
		key, value, _ := strings.Cut(entry, "=")
		if !strings.HasPrefix(key, "POSTFX_") {
			continue
		}
		log.Printf("  %s: %s", key, maskValue(key, value))
	}
}

func maskValue(key, value string) string {
	if sensitiveRegex.MatchString(key) {
		return "********"
	}
	return value
}

func UserInfo() {
	log.Printf("PID: %d", os.Getpid())
	currentUser, err := user.Current()
	if err != nil {
		log.Printf("Error getting current user: %v", err)
		return
	}
	log.Printf("User: uid=%s(%s) gid=%s", currentUser.Uid, currentUser.Username, currentUser.Gid)

	groups, err := os.Getgroups()
	if err != nil {
		log.Printf("Error getting groups: %v", err)
		return
	}
	groupNames := make([]string, 0, len(groups))
	for _, gid := range groups {
		if group, err := user.LookupGroupId(strconv.Itoa(gid)); err == nil {
			groupNames = append(groupNames, fmt.Sprintf("%s(%s)", group.Name, group.Gid))
		} else {
			groupNames = append(groupNames, strconv.Itoa(gid))
		}
	}
	log.Printf("Groups: %v", groupNames)
}
