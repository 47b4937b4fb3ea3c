package classify

// actionNames - action identifier -> display name
var actionNames = map[string]string{
	// Flight
	"v_flightready":     "Flight Ready",
	"v_view_mode":       "Cycle Camera View",
	"v_view_cycle_fwd":  "Cycle View Forward",
	"v_view_yaw_left":   "Look Left",
	"v_view_yaw_right":  "Look Right",
	"v_view_pitch_up":   "Look Up",
	"v_view_pitch_down": "Look Down",

	"v_ifcs_speed_limiter_toggle":     "Toggle Speed Limiter",
	"v_ifcs_vector_decoupling_toggle": "Toggle Decoupled Mode",
	"v_strafe_up":                     "Strafe Up",
	"v_strafe_down":                   "Strafe Down",
	"v_strafe_left":                   "Strafe Left",
	"v_strafe_right":                  "Strafe Right",
	"v_strafe_forward":                "Strafe Forward",
	"v_strafe_back":                   "Strafe Back",
	"v_roll_left":                     "Roll Left",
	"v_roll_right":                    "Roll Right",
	"v_pitch_up":                      "Pitch Up",
	"v_pitch_down":                    "Pitch Down",
	"v_yaw_left":                      "Yaw Left",
	"v_yaw_right":                     "Yaw Right",
	"v_afterburner":                   "Afterburner",
	"v_boost":                         "Boost",
	"v_brake":                         "Brake / Space Brake",

	"v_deploy_landing_system": "Toggle Landing Gear",
	"v_autoland":              "Auto Land",
	"v_toggle_vtol":           "Toggle VTOL",

	"v_power_toggle":       "Toggle Power",
	"v_power_reset_focus":  "Reset Power",
	"v_shield_reset_focus": "Reset Shields",

	// Weapons
	"v_attack1":                   "Fire Group 1",
	"v_attack2":                   "Fire Group 2",
	"v_attack1_group1":            "Fire Weapon Group 1",
	"v_attack1_group2":            "Fire Weapon Group 2",
	"v_weapon_cycle_fwd":          "Cycle Weapons Forward",
	"v_weapon_cycle_back":         "Cycle Weapons Back",
	"v_weapon_arm_missile":        "Arm Missiles",
	"v_weapon_launch_missile":     "Launch Missile",
	"v_weapon_cycle_missile_fwd":  "Cycle Missiles Forward",
	"v_weapon_cycle_missile_back": "Cycle Missiles Back",

	// Targeting
	"v_target_cycle_hostile_fwd":        "Cycle Hostile Targets",
	"v_target_cycle_hostile_back":       "Cycle Hostile Back",
	"v_target_cycle_friendly_fwd":       "Cycle Friendly Targets",
	"v_target_cycle_friendly_back":      "Cycle Friendly Back",
	"v_target_cycle_all_fwd":            "Cycle All Targets",
	"v_target_cycle_all_back":           "Cycle All Back",
	"v_target_cycle_subitem_fwd":        "Cycle Subtargets",
	"v_target_nearest_hostile":          "Target Nearest Hostile",
	"v_target_reticle_focus":            "Target Under Reticle",
	"v_target_unlock":                   "Unlock Target",
	"v_target_toggle_pin_focus_index_1": "Pin Target 1",
	"v_target_toggle_pin_focus_index_2": "Pin Target 2",
	"v_target_toggle_pin_focus_index_3": "Pin Target 3",

	// Countermeasures
	"v_weapon_countermeasure_launch_all":   "Launch All Countermeasures",
	"v_weapon_countermeasure_launch_decoy": "Launch Decoys",
	"v_weapon_countermeasure_launch_noise": "Launch Noise",
	"v_weapon_countermeasure_cycle_fwd":    "Cycle Countermeasures",

	// Mining, salvage and scanning
	"v_toggle_mining_mode":       "Toggle Mining Mode",
	"v_mining_throttle_up":       "Mining Throttle Up",
	"v_mining_throttle_down":     "Mining Throttle Down",
	"v_mining_laser_fire":        "Fire Mining Laser",
	"v_toggle_mining_laser_type": "Toggle Mining Laser Type",
	"v_toggle_salvage_mode":      "Toggle Salvage Mode",
	"v_salvage_throttle_up":      "Salvage Throttle Up",
	"v_salvage_throttle_down":    "Salvage Throttle Down",
	"v_toggle_scan_mode":         "Toggle Scan Mode",
	"v_scan_trigger_scan":        "Ping / Scan",
	"v_scanning_trigger_scan":    "Trigger Scan",

	// Quantum
	"v_toggle_quantum_mode": "Toggle Quantum Mode",
	"v_quantum_system_map":  "Open Starmap",
	"v_starmap":             "Open Starmap",

	"v_interaction_default": "Interact",
	"v_inner_thought_focus": "Inner Thought",

	// On foot
	"fps_jump":             "Jump",
	"fps_crouch":           "Crouch",
	"fps_prone":            "Prone",
	"fps_sprint":           "Sprint",
	"fps_walk":             "Walk",
	"fps_moveforward":      "Move Forward",
	"fps_moveback":         "Move Back",
	"fps_moveleft":         "Strafe Left",
	"fps_moveright":        "Strafe Right",
	"fps_lean_left":        "Lean Left",
	"fps_lean_right":       "Lean Right",
	"fps_attack1":          "Fire Weapon",
	"fps_attack2":          "Secondary Fire / ADS",
	"fps_reload":           "Reload",
	"fps_weapon_cycle_fwd": "Cycle Weapons",
	"fps_holster":          "Holster Weapon",
	"fps_grenade":          "Throw Grenade",
	"fps_melee":            "Melee Attack",
	"fps_interact":         "Interact",
	"fps_use":              "Use",
	"fps_inspect":          "Inspect",

	// EVA
	"eva_strafe_up":      "EVA Up",
	"eva_strafe_down":    "EVA Down",
	"eva_strafe_left":    "EVA Left",
	"eva_strafe_right":   "EVA Right",
	"eva_strafe_forward": "EVA Forward",
	"eva_strafe_back":    "EVA Back",
	"eva_roll_left":      "EVA Roll Left",
	"eva_roll_right":     "EVA Roll Right",
	"eva_boost":          "EVA Boost",
	"eva_brake":          "EVA Brake",

	// Ground vehicles
	"vehicle_brake": "Vehicle Brake",
	"vehicle_horn":  "Horn",

	"mobiglas":            "Open MobiGlas",
	"personal_inventory":  "Personal Inventory",
	"v_toggle_flashlight": "Toggle Flashlight",

	// Social
	"foip_pushtotalk":    "Push to Talk",
	"foip_viewownplayer": "View Own Player",
	"foip_recalibrate":   "Recalibrate FOIP",
	"emote_agree":        "Emote: Agree",
	"emote_disagree":     "Emote: Disagree",
	"emote_wave":         "Emote: Wave",
	"emote_salute":       "Emote: Salute",
}

// actionMapModes - action map name -> gameplay mode
var actionMapModes = map[string]Mode{
	"seat_general":                  ModeGeneral,
	"default":                       ModeGeneral,
	"player_general":                ModeGeneral,
	"player_emotes":                 ModeSocial,
	"player_input_optical_tracking": ModeGeneral,

	"spaceship_general":        ModeFlight,
	"spaceship_view":           ModeCamera,
	"spaceship_movement":       ModeFlight,
	"spaceship_quantum":        ModeFlight,
	"spaceship_targeting":      ModeFlight,
	"spaceship_target_hailing": ModeFlight,
	"spaceship_weapons":        ModeFlight,
	"spaceship_missiles":       ModeFlight,
	"spaceship_defensive":      ModeFlight,
	"spaceship_power":          ModeFlight,
	"spaceship_shields":        ModeFlight,
	"spaceship_radar":          ModeFlight,
	"spaceship_hud":            ModeFlight,

	"spaceship_mining":       ModeMining,
	"spaceship_salvage":      ModeSalvage,
	"spaceship_scanning":     ModeScanning,
	"spaceship_tractor_beam": ModeGeneral,

	"turret_main":     ModeTurret,
	"turret_movement": ModeTurret,
	"turret_advanced": ModeTurret,

	"vehicle_general": ModeVehicle,
	"vehicle_driver":  ModeVehicle,

	"fps_movement":    ModeFPS,
	"fps_view":        ModeFPS,
	"fps_combat":      ModeFPS,
	"fps_weapons":     ModeFPS,
	"fps_interaction": ModeFPS,
	// Misspelt in game data
	"fps_ineraction":  ModeFPS,
	"fps_inerraction": ModeFPS,

	"eva_movement":     ModeEVA,
	"eva":              ModeEVA,
	"zero_gravity_eva": ModeEVA,

	"ui_textfield":    ModeGeneral,
	"ui_notification": ModeGeneral,
	"inventory":       ModeInventory,
}
