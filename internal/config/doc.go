// Package config provides configuration management for kubeswitch.
//
// Configuration is read from a single YAML file, by default
// ~/.config/kubeswitch/config.yaml. The KUBESWITCH_CONFIG_PATH environment
// variable overrides that location. A missing file is not an error: the
// built-in defaults are used as-is.
//
// # Configuration Structure
//
//	cmd: ks                  # shell alias the wrapper function is bound to
//	editor: $EDITOR          # editor command for the edit flow
//	selector: fzf            # interactive matcher backend: fzf | builtin
//	kube:
//	  exec: kubectl          # external cluster tool executable
//	  cmd: k                 # shell alias for the cluster tool
//	  dir: ~/.kube/config    # root directory holding stored kubeconfigs
//	  exportKubeconfig: false
//	  updateContext: false   # persist namespace changes into the kubeconfig
//	nsAlias:
//	  - regex: '^prod/'
//	    alias: [default, kube-system]
//	  - names: [dev/local]
//	    alias: [default]
//
// All validation happens at load time, before any resolution logic runs.
// Invalid regular expressions, empty required fields, and alias rules that
// declare neither a regex nor a name set are rejected here.
package config
